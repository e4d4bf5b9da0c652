package lingo

import "testing"

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"en", "en"},
		{"EN", "en"},
		{"en-US", "en"},
		{"en_US", "en"},
		{"pt-BR", "pt"},
		{"  fr  ", "fr"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeLanguage(tt.in); got != tt.want {
			t.Errorf("NormalizeLanguage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsSupported(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"en", true},
		{"es-ES", true},
		{"ja", true},
		{"xx", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsSupported(tt.code); got != tt.want {
			t.Errorf("IsSupported(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestMatchLocale(t *testing.T) {
	tests := []struct {
		name  string
		hints []string
		want  string
	}{
		{"exact", []string{"es"}, "es"},
		{"region collapses", []string{"de-AT"}, "de"},
		{"first hint preferred", []string{"ru", "en"}, "ru"},
		{"unknown defaults", []string{"zz"}, DefaultLanguage},
		{"empty defaults", nil, DefaultLanguage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchLocale(tt.hints...); got != tt.want {
				t.Errorf("MatchLocale(%v) = %q, want %q", tt.hints, got, tt.want)
			}
		})
	}
}

func TestGetLanguageName(t *testing.T) {
	if got := GetLanguageName("es"); got != "Spanish" {
		t.Errorf("GetLanguageName(es) = %q, want Spanish", got)
	}
	if got := GetLanguageName("es-MX"); got != "Spanish" {
		t.Errorf("GetLanguageName(es-MX) = %q, want Spanish", got)
	}
	if got := GetLanguageName("zz"); got != "zz" {
		t.Errorf("GetLanguageName(zz) = %q, want the code back", got)
	}
}

func TestSupportedLanguages_CopyIsolated(t *testing.T) {
	langs := SupportedLanguages()
	langs[0] = "mutated"

	if SupportedLanguages()[0] != "en" {
		t.Error("SupportedLanguages must return a copy")
	}
}
