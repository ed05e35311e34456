package catalog

import "testing"

func TestSlugify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"Business Cards", "business-cards"},
		{"  Flyers &  Leaflets ", "flyers-leaflets"},
		{"A4 Posters", "a4-posters"},
		{"UPPER", "upper"},
		{"dash-already", "dash-already"},
	}

	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
