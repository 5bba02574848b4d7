package crashes

import "sort"

// SortVersions returns a copy of versions ordered latest first by their upload
// timestamp. Versions uploaded at the same time keep their relative order.
func SortVersions(versions []Version) []Version {
	sorted := make([]Version, len(versions))
	copy(sorted, versions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UploadedAt > sorted[j].UploadedAt
	})
	return sorted
}

// SelectVersion picks the version to report on. Without a distribution group
// the latest upload wins. With a group, the latest version released to a group
// with that exact name wins; versions without distribution group data never
// match but do not stop the scan.
func SelectVersion(versions []Version, distributionGroup string) *Version {
	sorted := SortVersions(versions)
	if len(sorted) == 0 {
		return nil
	}
	if distributionGroup == "" {
		return &sorted[0]
	}
	for i := range sorted {
		if sorted[i].HasDistributionGroup(distributionGroup) {
			return &sorted[i]
		}
	}
	return nil
}
