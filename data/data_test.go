package data

import (
	"testing"

	efs "github.com/recrep/recrep/internal/assets"
	"github.com/stretchr/testify/assert"
)

// TestDataTemplatesReport asserts required report templates are present in EFS.
func TestDataTemplatesReport(t *testing.T) {
	type testCase struct {
		name   string
		assert func(tc *testCase)
	}
	cases := []testCase{
		{
			name: "report-templates-required",
			assert: func(tc *testCase) {
				want := []string{
					"templates/report/crashes.tmpl",
					"templates/report/no_crashes.tmpl",
				}
				got, err := efs.GetAllFilenames(efs.GetData(), "templates/report")
				if err != nil {
					t.Fatalf("failed to read efs: %v", err)
				}
				assert.Equal(t, want, got, "report template files are present")
			},
		},
		{
			name: "report-templates-readable",
			assert: func(tc *testCase) {
				templates, err := efs.GetAllFilenames(efs.GetData(), "templates/report")
				if err != nil {
					t.Fatalf("failed to read efs: %v", err)
				}
				for _, m := range templates {
					content, err := efs.ReadFile(m)
					if err != nil {
						t.Fatalf("unable to read template %s: %v", m, err)
					}
					if len(content) == 0 {
						t.Fatalf("empty template %s", m)
					}
				}
			},
		},
	}

	efs.UpdateData(&Templates)

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.assert(&tc)
		})
	}
}
