package header

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name      string
		props     Props
		want      []string
		dontWant  []string
		wantEmpty bool
	}{
		{
			name: "Premium member",
			props: Props{
				Visible:   true,
				FirstName: "Ada",
				Badge:     "Premium Member",
			},
			want: []string{"Welcome, Ada", "Premium Member"},
		},
		{
			name: "Badge loading",
			props: Props{
				Visible:      true,
				FirstName:    "Ada",
				Badge:        "Basic Member",
				BadgeLoading: true,
				Spinner:      "*",
			},
			want:     []string{"Welcome, Ada", "Loading membership"},
			dontWant: []string{"Basic Member"},
		},
		{
			name:  "No first name",
			props: Props{Visible: true, Badge: "Basic Member"},
			want:  []string{"Welcome", "Basic Member"},
		},
		{
			name:      "Hidden",
			props:     Props{Visible: false, FirstName: "Ada"},
			wantEmpty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.props)
			if tt.wantEmpty {
				if got != "" {
					t.Errorf("Render() = %q, want empty string", got)
				}
				return
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Render() = %q, want %q", got, w)
				}
			}
			for _, w := range tt.dontWant {
				if strings.Contains(got, w) {
					t.Errorf("Render() = %q, should not contain %q", got, w)
				}
			}
		})
	}
}
