package models

import (
	"errors"
	"strings"
	"testing"

	"github.com/JaredForchheimer/Hack-Coms/internal/domain"
)

func TestProjectValidate(t *testing.T) {
	tests := []struct {
		name    string
		project Project
		wantErr bool
	}{
		{
			name:    "valid",
			project: Project{Name: "Demo"},
		},
		{
			name:    "empty name",
			project: Project{Name: ""},
			wantErr: true,
		},
		{
			name:    "whitespace name",
			project: Project{Name: "   "},
			wantErr: true,
		},
		{
			name:    "name at limit",
			project: Project{Name: strings.Repeat("x", 255)},
		},
		{
			name:    "name over limit",
			project: Project{Name: strings.Repeat("x", 256)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.project.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("error %v does not match ErrValidation", err)
			}
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("error %v is not a ValidationError", err)
			}
			if len(ve.Fields) == 0 {
				t.Error("ValidationError carries no field names")
			}
		})
	}
}

func TestTextSourceValidate(t *testing.T) {
	valid := func() *TextSource {
		return &TextSource{ProjectID: 1, Title: "Note", Content: "body"}
	}

	tests := []struct {
		name    string
		mutate  func(*TextSource)
		wantErr bool
	}{
		{name: "valid", mutate: func(*TextSource) {}},
		{name: "missing project", mutate: func(s *TextSource) { s.ProjectID = 0 }, wantErr: true},
		{name: "blank title", mutate: func(s *TextSource) { s.Title = " " }, wantErr: true},
		{name: "blank content", mutate: func(s *TextSource) { s.Content = "\n\t" }, wantErr: true},
		{name: "type tag over limit", mutate: func(s *TextSource) { s.SourceType = strings.Repeat("t", 51) }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(s)
			if err := s.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLinkValidate(t *testing.T) {
	tests := []struct {
		name    string
		link    Link
		wantErr bool
	}{
		{
			name: "valid https",
			link: Link{TextSourceID: 1, URL: "https://example.com/a"},
		},
		{
			name: "valid http",
			link: Link{TextSourceID: 1, URL: "http://example.com"},
		},
		{
			name:    "missing url",
			link:    Link{TextSourceID: 1},
			wantErr: true,
		},
		{
			name:    "relative url",
			link:    Link{TextSourceID: 1, URL: "/just/a/path"},
			wantErr: true,
		},
		{
			name:    "no host",
			link:    Link{TextSourceID: 1, URL: "https://"},
			wantErr: true,
		},
		{
			name:    "url over limit",
			link:    Link{TextSourceID: 1, URL: "https://example.com/" + strings.Repeat("p", 500)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.link.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLinkHelpers(t *testing.T) {
	l := Link{URL: "https://docs.example.com/page"}
	if got, want := l.Domain(), "docs.example.com"; got != want {
		t.Errorf("Domain() = %q, want %q", got, want)
	}
	if !l.IsSecure() {
		t.Error("IsSecure() = false for https URL")
	}

	plain := Link{URL: "http://example.com"}
	if plain.IsSecure() {
		t.Error("IsSecure() = true for http URL")
	}
}

func TestVideoHelpers(t *testing.T) {
	size := int64(10 * 1024 * 1024)
	v := Video{FileSize: &size}
	if got := v.FileSizeMB(); got != 10 {
		t.Errorf("FileSizeMB() = %v, want 10", got)
	}
	if got := (&Video{}).FileSizeMB(); got != 0 {
		t.Errorf("FileSizeMB() with no size = %v, want 0", got)
	}

	tests := []struct {
		seconds int
		want    string
	}{
		{42, "0:42"},
		{125, "2:05"},
		{3725, "1:02:05"},
	}
	for _, tt := range tests {
		d := tt.seconds
		v := Video{Duration: &d}
		if got := v.DurationFormatted(); got != tt.want {
			t.Errorf("DurationFormatted(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
	if got := (&Video{}).DurationFormatted(); got != "" {
		t.Errorf("DurationFormatted() with no duration = %q, want empty", got)
	}
}

func TestMetadataClone(t *testing.T) {
	m := Metadata{"a": 1, "b": "two"}
	c := m.Clone()
	c["a"] = 99
	if m["a"] != 1 {
		t.Error("Clone() shares storage with the original")
	}
	if (Metadata)(nil).Clone() != nil {
		t.Error("Clone() of nil is not nil")
	}
}
