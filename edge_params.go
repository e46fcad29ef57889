// edge_params.go
// ---------------
// Builder for the edge-detection parameter object. The backend expects a
// flat snake_case parameter map; node editors supply sparse camelCase
// overrides. The builder is total: anything that does not coerce falls back
// to its documented default.
package visionbridge

import (
	"strconv"
	"strings"
)

// Documented backend defaults for the edge-detection endpoint.
const (
	DefaultEdgeMethod          = "canny"
	DefaultCannyLow            = 50
	DefaultCannyHigh           = 150
	DefaultSobelKernel         = 3
	DefaultLaplacianKernel     = 3
	DefaultPrewittKernel       = 3
	DefaultScharrScale         = 1
	DefaultMinContourArea      = 100
	DefaultMaxContourArea      = 100000
	DefaultMinContourPerimeter = 50
	DefaultMaxContours         = 10
	DefaultBlurKernel          = 5
	DefaultBilateralD          = 9
	DefaultBilateralSigmaColor = 75
	DefaultBilateralSigmaSpace = 75
	DefaultMorphOperation      = "close"
	DefaultMorphKernel         = 3
	DefaultMorphIterations     = 1
)

// BuildEdgeParams merges sparse user overrides into the full defaults table.
// Numeric strings are coerced to integers; invalid coercions fall back to
// the default rather than propagating garbage.
func BuildEdgeParams(user map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"method":                stringOr(user, "method", DefaultEdgeMethod),
		"canny_low":             intOr(user, "cannyLow", DefaultCannyLow),
		"canny_high":            intOr(user, "cannyHigh", DefaultCannyHigh),
		"sobel_kernel":          intOr(user, "sobelKernel", DefaultSobelKernel),
		"laplacian_kernel":      intOr(user, "laplacianKernel", DefaultLaplacianKernel),
		"prewitt_kernel":        intOr(user, "prewittKernel", DefaultPrewittKernel),
		"scharr_scale":          intOr(user, "scharrScale", DefaultScharrScale),
		"min_contour_area":      intOr(user, "minContourArea", DefaultMinContourArea),
		"max_contour_area":      intOr(user, "maxContourArea", DefaultMaxContourArea),
		"min_contour_perimeter": intOr(user, "minContourPerimeter", DefaultMinContourPerimeter),
		"max_contours":          intOr(user, "maxContours", DefaultMaxContours),
		"blur_enabled":          boolOr(user, "blurEnabled", true),
		"blur_kernel":           intOr(user, "blurKernel", DefaultBlurKernel),
		"bilateral_enabled":     boolOr(user, "bilateralEnabled", false),
		"bilateral_d":           intOr(user, "bilateralD", DefaultBilateralD),
		"bilateral_sigma_color": intOr(user, "bilateralSigmaColor", DefaultBilateralSigmaColor),
		"bilateral_sigma_space": intOr(user, "bilateralSigmaSpace", DefaultBilateralSigmaSpace),
		"morph_enabled":         boolOr(user, "morphEnabled", false),
		"morph_operation":       stringOr(user, "morphOperation", DefaultMorphOperation),
		"morph_kernel":          intOr(user, "morphKernel", DefaultMorphKernel),
		"morph_iterations":      intOr(user, "morphIterations", DefaultMorphIterations),
	}
}

func intOr(m map[string]interface{}, key string, def int) int {
	if m == nil {
		return def
	}
	switch v := m[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return i
		}
	}
	return def
}

func stringOr(m map[string]interface{}, key string, def string) string {
	if m == nil {
		return def
	}
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return def
}

func boolOr(m map[string]interface{}, key string, def bool) bool {
	if m == nil {
		return def
	}
	switch v := m[key].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return def
}
