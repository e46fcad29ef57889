package visionbridge

import (
	"math"
	"strings"
	"testing"
)

func TestValidateROI(t *testing.T) {
	tests := []struct {
		name    string
		roi     *ROI
		limits  *ROILimits
		wantErr string // empty means valid; otherwise substring of the error
	}{
		{"valid", &ROI{X: 0, Y: 0, Width: 100, Height: 50}, nil, ""},
		{"valid offset", &ROI{X: 10, Y: 20, Width: 1, Height: 1}, nil, ""},
		{"missing", nil, nil, "missing"},
		{"negative x", &ROI{X: -1, Y: 0, Width: 10, Height: 10}, nil, "x"},
		{"negative y", &ROI{X: 0, Y: -5, Width: 10, Height: 10}, nil, "y"},
		{"zero width", &ROI{X: 0, Y: 0, Width: 0, Height: 10}, nil, "width"},
		{"negative height", &ROI{X: 0, Y: 0, Width: 10, Height: -3}, nil, "height"},
		{"exceeds max width", &ROI{X: 0, Y: 0, Width: 2000, Height: 10}, &ROILimits{MaxWidth: 1920}, "maximum"},
		{"exceeds max height", &ROI{X: 0, Y: 0, Width: 10, Height: 1100}, &ROILimits{MaxHeight: 1080}, "maximum"},
		{"within limits", &ROI{X: 0, Y: 0, Width: 1920, Height: 1080}, &ROILimits{MaxWidth: 1920, MaxHeight: 1080}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateROI(tt.roi, tt.limits)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error mentioning %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateImageID(t *testing.T) {
	for _, id := range []string{"img_0001", "a", "ABC-123_xyz", strings.Repeat("x", 255)} {
		got, err := ValidateImageID(id)
		if err != nil {
			t.Fatalf("ValidateImageID(%q): %v", id, err)
		}
		if got != id {
			t.Fatalf("sanitized value %q differs from input %q", got, id)
		}
	}

	traversal := []string{"../etc/passwd", "a/b", `a\b`, "img..id"}
	for _, id := range traversal {
		if _, err := ValidateImageID(id); err == nil {
			t.Fatalf("ValidateImageID(%q): expected rejection", id)
		} else if !strings.Contains(err.Error(), "path traversal") {
			t.Fatalf("ValidateImageID(%q): error %q does not mention path traversal", id, err)
		}
	}

	invalid := []string{"", "img 01", "img.png", strings.Repeat("x", 256), "日本語"}
	for _, id := range invalid {
		if _, err := ValidateImageID(id); err == nil {
			t.Fatalf("ValidateImageID(%q): expected rejection", id)
		}
	}
}

func TestValidateNumericRange(t *testing.T) {
	if err := ValidateNumericRange(5, 0, 10, "count"); err != nil {
		t.Fatalf("expected valid: %v", err)
	}
	if err := ValidateNumericRange(11, 0, 10, "count"); err == nil {
		t.Fatal("expected out-of-range rejection")
	} else if !strings.Contains(err.Error(), "count") {
		t.Fatalf("error %q does not name the value", err)
	}
	if err := ValidateNumericRange(math.NaN(), 0, 10, "count"); err == nil {
		t.Fatal("expected NaN rejection")
	}
	if err := ValidateNumericRange(math.Inf(1), 0, 10, "count"); err == nil {
		t.Fatal("expected Inf rejection")
	}
}

func TestValidateThreshold(t *testing.T) {
	for _, v := range []float64{0, 0.5, 1} {
		if err := ValidateThreshold(v); err != nil {
			t.Fatalf("ValidateThreshold(%v): %v", v, err)
		}
	}
	for _, v := range []float64{-0.01, 1.01, math.NaN()} {
		if err := ValidateThreshold(v); err == nil {
			t.Fatalf("ValidateThreshold(%v): expected rejection", v)
		}
	}
}
