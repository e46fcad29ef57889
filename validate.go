// validate.go
// ------------
// Pure input validators shared by the node wrappers. Validators return an
// error describing the violated constraint instead of panicking; nodes
// consume the error locally and report it through their error sink.
package visionbridge

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

const maxImageIDLength = 255

var imageIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ROILimits optionally bounds a region of interest to a frame size.
type ROILimits struct {
	MaxWidth  int
	MaxHeight int
}

// ValidateROI checks a region-of-interest rectangle: non-negative origin,
// positive size, and optional maximum bounds.
func ValidateROI(roi *ROI, limits *ROILimits) error {
	if roi == nil {
		return fmt.Errorf("roi is missing")
	}
	if roi.X < 0 {
		return fmt.Errorf("roi x must not be negative, got %d", roi.X)
	}
	if roi.Y < 0 {
		return fmt.Errorf("roi y must not be negative, got %d", roi.Y)
	}
	if roi.Width <= 0 {
		return fmt.Errorf("roi width must be positive, got %d", roi.Width)
	}
	if roi.Height <= 0 {
		return fmt.Errorf("roi height must be positive, got %d", roi.Height)
	}
	if limits != nil {
		if limits.MaxWidth > 0 && roi.Width > limits.MaxWidth {
			return fmt.Errorf("roi width %d exceeds maximum %d", roi.Width, limits.MaxWidth)
		}
		if limits.MaxHeight > 0 && roi.Height > limits.MaxHeight {
			return fmt.Errorf("roi height %d exceeds maximum %d", roi.Height, limits.MaxHeight)
		}
	}
	return nil
}

// ValidateImageID checks an opaque image identifier before it is embedded in
// a request path or body. Identifiers that could escape the backend's image
// store are rejected. On success the sanitized (identical) value is returned.
func ValidateImageID(id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("image id is empty")
	}
	if strings.Contains(id, "..") || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("image id %q rejected: path traversal characters are not allowed", id)
	}
	if len(id) > maxImageIDLength {
		return "", fmt.Errorf("image id exceeds %d characters", maxImageIDLength)
	}
	if !imageIDPattern.MatchString(id) {
		return "", fmt.Errorf("image id %q contains characters outside [A-Za-z0-9_-]", id)
	}
	return id, nil
}

// ValidateNumericRange checks that value is a finite number within
// [min, max]. The name is used in the error text.
func ValidateNumericRange(value, min, max float64, name string) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%s must be a finite number", name)
	}
	if value < min || value > max {
		return fmt.Errorf("%s must be between %v and %v, got %v", name, min, max, value)
	}
	return nil
}

// ValidateThreshold checks a confidence threshold in [0, 1].
func ValidateThreshold(value float64) error {
	return ValidateNumericRange(value, 0, 1, "threshold")
}
