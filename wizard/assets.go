package wizard

import "github.com/uvzlabs/launchpad/course"

// AssembleLaunchAssets projects the published bundle and generated
// content into the launch bundle. Total function, no I/O; safe to call
// any time both inputs exist.
func AssembleLaunchAssets(bundle *course.PublishedBundle, content *course.Content) course.LaunchAssets {
	return course.LaunchAssets{
		CourseURL:     bundle.Course.URL,
		ProductURL:    bundle.Product.URL,
		SalesScript:   content.SalesPage,
		EmailSequence: append([]course.EmailMessage(nil), content.EmailSequence...),
	}
}
