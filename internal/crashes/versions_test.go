package crashes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func version(short, uploadedAt string, groups ...string) Version {
	v := Version{ShortVersion: short, UploadedAt: uploadedAt}
	for _, g := range groups {
		v.DistributionGroups = append(v.DistributionGroups, DistributionGroup{ID: g + "-id", Name: g})
	}
	return v
}

func TestSelectVersion(t *testing.T) {
	tests := []struct {
		name     string
		versions []Version
		group    string
		want     string
	}{
		{
			name:     "empty list",
			versions: nil,
			want:     "",
		},
		{
			name:  "empty list with group",
			group: "Beta",
			want:  "",
		},
		{
			name: "latest upload wins",
			versions: []Version{
				version("1.0", "2019-11-16T22:29:48.000Z"),
				version("1.2", "2019-11-18T22:29:48.000Z"),
				version("1.1", "2019-11-17T22:29:48.000Z"),
			},
			want: "1.2",
		},
		{
			name: "ties keep source order",
			versions: []Version{
				version("1.0", "2019-11-16T22:29:48.000Z"),
				version("2.0-a", "2019-11-18T22:29:48.000Z"),
				version("2.0-b", "2019-11-18T22:29:48.000Z"),
			},
			want: "2.0-a",
		},
		{
			name: "latest of distribution group",
			versions: []Version{
				version("1.0", "2019-11-16T22:29:48.000Z", "Beta"),
				version("1.2", "2019-11-18T22:29:48.000Z", "Collaborators"),
				version("1.1", "2019-11-17T22:29:48.000Z", "Beta", "Collaborators"),
			},
			group: "Beta",
			want:  "1.1",
		},
		{
			name: "group name must match exactly",
			versions: []Version{
				version("1.0", "2019-11-16T22:29:48.000Z", "beta"),
			},
			group: "Beta",
			want:  "",
		},
		{
			// Versions without distribution group data do not end the scan,
			// older versions are still considered.
			name: "missing groups keep scanning",
			versions: []Version{
				version("1.0", "2019-11-16T22:29:48.000Z", "Beta"),
				version("1.2", "2019-11-18T22:29:48.000Z"),
			},
			group: "Beta",
			want:  "1.0",
		},
		{
			name: "no version in group",
			versions: []Version{
				version("1.0", "2019-11-16T22:29:48.000Z", "Beta"),
				version("1.2", "2019-11-18T22:29:48.000Z"),
			},
			group: "Store",
			want:  "",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SelectVersion(tc.versions, tc.group)
			if tc.want == "" {
				assert.Nil(t, got)
				return
			}
			if assert.NotNil(t, got) {
				assert.Equal(t, tc.want, got.ShortVersion)
			}
		})
	}
}

func TestSortVersionsDoesNotMutateInput(t *testing.T) {
	in := []Version{
		version("1.0", "2019-11-16T22:29:48.000Z"),
		version("1.1", "2019-11-17T22:29:48.000Z"),
	}
	sorted := SortVersions(in)

	assert.Equal(t, "1.1", sorted[0].ShortVersion)
	assert.Equal(t, "1.0", in[0].ShortVersion)
}
