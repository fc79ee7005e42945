// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package normalize

import (
	"reflect"
	"testing"
	"time"

	"github.com/tomtom215/registhor/internal/models"
)

func TestLang(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"fr": "fr",
		"en": "en",
		"":   "en",
		"FR": "en",
		"de": "en",
	}
	for in, want := range tests {
		if got := Lang(in); got != want {
			t.Errorf("Lang(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCourseTitle(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{"Orientation to Government (G123)", "Orientation to Government"},
		{"[A230] Leadership Essentials", "Leadership Essentials"},
		{"Writing Skills X101", "Writing Skills"},
		{"Plain Title", "Plain Title"},
		{"  padded  ", "padded"},
		{"", ""},
		{"Course 2019", "Course 2019"},
	}
	for _, tt := range tests {
		if got := CourseTitle(tt.in); got != tt.want {
			t.Errorf("CourseTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDepartmentName(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{"Health Canada", "Health Canada"},
		{"_archive_Old Agency", "Old Agency"},
		{"Obsolete_Agency", "Agency"},
		{"_Obsolete_Board", "Board"},
		{"Council_obsolete_", "Council"},
	}
	for _, tt := range tests {
		if got := DepartmentName(tt.in); got != tt.want {
			t.Errorf("DepartmentName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCityProvince(t *testing.T) {
	t.Parallel()
	tests := []struct {
		city, province string
		want           string
	}{
		{"Ottawa", "Ontario", "Ottawa, Ontario"},
		{"Paris", "Outside Canada", "Paris"},
		{"Londres", "Hors du Canada", "Londres"},
		{"Nowhere", "Unknown", "Nowhere"},
		{"Nulle part", "Iconnu", "Nulle part"},
		{"", "", ", "},
	}
	for _, tt := range tests {
		if got := CityProvince(tt.city, tt.province); got != tt.want {
			t.Errorf("CityProvince(%q, %q) = %q, want %q", tt.city, tt.province, got, tt.want)
		}
	}
}

func TestJunkAndUniqueSorted(t *testing.T) {
	t.Parallel()
	j := NewJunk([]string{"", "Unknown"})
	if !j.Contains("Unknown") || !j.Contains("") || j.Contains("Ottawa") {
		t.Error("Junk.Contains gave unexpected result")
	}

	got := UniqueSorted([]string{"b", "a", "b", "c", "a"})
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("UniqueSorted() = %v, want %v", got, want)
	}
	if got := UniqueSorted(nil); got == nil || len(got) != 0 {
		t.Errorf("UniqueSorted(nil) = %#v, want empty non-nil slice", got)
	}
}

func TestBackgroundColor(t *testing.T) {
	t.Parallel()
	today := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)
	day := func(offset int) time.Time { return time.Date(2024, 3, 15+offset, 0, 0, 0, 0, time.UTC) }
	rules := DefaultColorRules()

	tests := []struct {
		name      string
		start     time.Time
		end       time.Time
		confirmed int64
		status    string
		want      string
	}{
		{"cancelled in past stays red", day(-10), day(-9), 20, models.OfferingCancelled, ColorRed},
		{"cancelled upcoming", day(40), day(41), 0, models.OfferingCancelled, ColorRed},
		{"ended yesterday", day(-2), day(-1), 3, models.OfferingDelivered, ColorGrey},
		{"ends today is not past", day(-1), day(0), 3, models.OfferingOpen, ColorOrange},
		{"starts exactly 30 days out", day(30), day(31), 0, models.OfferingOpen, ColorGreen},
		{"starts 29 days out", day(29), day(30), 0, models.OfferingOpen, ColorOrange},
		{"enough confirmed", day(5), day(6), 10, models.OfferingOpen, ColorGreen},
		{"just below threshold", day(5), day(6), 9, models.OfferingOpen, ColorOrange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := BackgroundColor(tt.start, tt.end, tt.confirmed, tt.status, today, rules); got != tt.want {
				t.Errorf("BackgroundColor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBackgroundColor_CustomRules(t *testing.T) {
	t.Parallel()
	today := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	start := today.AddDate(0, 0, 8)
	rules := ColorRules{ConfirmedThreshold: 5, UpcomingDays: 7}

	if got := BackgroundColor(start, start, 0, models.OfferingOpen, today, rules); got != ColorGreen {
		t.Errorf("start beyond custom horizon = %q, want green", got)
	}
	if got := BackgroundColor(today, today, 5, models.OfferingOpen, today, rules); got != ColorGreen {
		t.Errorf("custom confirmed threshold = %q, want green", got)
	}
}

func TestLocalizeOffering(t *testing.T) {
	t.Parallel()
	o := models.Offering{
		BusinessType:     "Instructor-Led",
		OfferingLanguage: "Bilingual",
		OfferingStatus:   models.OfferingCancelled,
	}
	en := o
	LocalizeOffering(&en, LangEN)
	if en != o {
		t.Errorf("English offering changed: %+v", en)
	}

	LocalizeOffering(&o, LangFR)
	if o.BusinessType != "Salle de classe" || o.OfferingLanguage != "Bilingue" || o.OfferingStatus != "Annulée" {
		t.Errorf("French offering = %+v", o)
	}

	unknown := models.Offering{BusinessType: "Online", OfferingLanguage: "Inuktitut", OfferingStatus: "Pending"}
	LocalizeOffering(&unknown, LangFR)
	if unknown.BusinessType != "Online" || unknown.OfferingLanguage != "Inuktitut" || unknown.OfferingStatus != "Pending" {
		t.Errorf("unknown values should pass through, got %+v", unknown)
	}
}

func TestCommentCity(t *testing.T) {
	t.Parallel()
	tests := []struct {
		city, lang string
		want       string
	}{
		{"OTTAWA (NCR)", LangEN, "Ottawa (NCR)"},
		{"st. john's", LangEN, "St. John's"},
		{"saint-jean-sur-richelieu", LangEN, "Saint-Jean-Sur-Richelieu"},
		{"RÉGION DE LA CAPITALE NATIONALE (RCN)", LangFR, "Région de la capitale nationale (RCN)"},
		{"en ligne", LangFR, "En ligne"},
		{"", LangEN, ""},
	}
	for _, tt := range tests {
		if got := CommentCity(tt.city, tt.lang); got != tt.want {
			t.Errorf("CommentCity(%q, %q) = %q, want %q", tt.city, tt.lang, got, tt.want)
		}
	}
}

func TestLearnerClassificationAndQuarter(t *testing.T) {
	t.Parallel()
	if got := LearnerClassification("EC - Unknown", LangEN); got != "EC" {
		t.Errorf("got %q, want EC", got)
	}
	if got := LearnerClassification("Unknown", LangFR); got != "Inconnu" {
		t.Errorf("got %q, want Inconnu", got)
	}
	if got := LearnerClassification("Unknown", LangEN); got != "Unknown" {
		t.Errorf("got %q, want Unknown", got)
	}
	if got := Quarter("Q3", LangFR); got != "T3" {
		t.Errorf("Quarter FR = %q, want T3", got)
	}
	if got := Quarter("Q3", LangEN); got != "Q3" {
		t.Errorf("Quarter EN = %q, want Q3", got)
	}
}
