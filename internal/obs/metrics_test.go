package obs

import "testing"

func TestCanonicalPath(t *testing.T) {
	cases := map[string]string{
		"":                                "/",
		"/metrics":                        "/metrics",
		"/api/health":                     "/api/health",
		"/api/users/abc":                  "/api/users/:id",
		"/api/users/abc/extra":            "/api/users/abc/extra",
		"/api/springs/abc":                "/api/springs/:id",
		"/api/springs/owner/xyz":          "/api/springs/owner/:id",
		"/api/assessments/abc":            "/api/assessments/:id",
		"/api/assessments/owner/123":      "/api/assessments/owner/:id",
		"/api/assessments?limit=10":       "/api/assessments",
		"/api/springs/abc?municipality=x": "/api/springs/:id",
	}
	for input, expected := range cases {
		if got := CanonicalPath(input); got != expected {
			t.Fatalf("CanonicalPath(%q)=%q, want %q", input, got, expected)
		}
	}
}
