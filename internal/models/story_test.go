package models

import "testing"

func TestValidContentType(t *testing.T) {
	for _, v := range []string{"News", "Article"} {
		if !ValidContentType(v) {
			t.Errorf("ValidContentType(%q) = false, want true", v)
		}
	}
	for _, v := range []string{"", "news", "Video"} {
		if ValidContentType(v) {
			t.Errorf("ValidContentType(%q) = true, want false", v)
		}
	}
}

func TestValidLanguage(t *testing.T) {
	for _, v := range []string{"en-US", "hi-IN"} {
		if !ValidLanguage(v) {
			t.Errorf("ValidLanguage(%q) = false, want true", v)
		}
	}
	for _, v := range []string{"", "en", "fr-FR"} {
		if ValidLanguage(v) {
			t.Errorf("ValidLanguage(%q) = true, want false", v)
		}
	}
}

func TestValidCategory(t *testing.T) {
	for _, v := range Categories {
		if !ValidCategory(v) {
			t.Errorf("ValidCategory(%q) = false, want true", v)
		}
	}
	for _, v := range []string{"", "art", "Politics"} {
		if ValidCategory(v) {
			t.Errorf("ValidCategory(%q) = true, want false", v)
		}
	}
}
