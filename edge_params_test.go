package visionbridge

import "testing"

func TestBuildEdgeParamsDefaults(t *testing.T) {
	params := BuildEdgeParams(nil)

	want := map[string]interface{}{
		"method":                DefaultEdgeMethod,
		"canny_low":             DefaultCannyLow,
		"canny_high":            DefaultCannyHigh,
		"sobel_kernel":          DefaultSobelKernel,
		"laplacian_kernel":      DefaultLaplacianKernel,
		"prewitt_kernel":        DefaultPrewittKernel,
		"scharr_scale":          DefaultScharrScale,
		"min_contour_area":      DefaultMinContourArea,
		"max_contour_area":      DefaultMaxContourArea,
		"min_contour_perimeter": DefaultMinContourPerimeter,
		"max_contours":          DefaultMaxContours,
		"blur_enabled":          true,
		"blur_kernel":           DefaultBlurKernel,
		"bilateral_enabled":     false,
		"bilateral_d":           DefaultBilateralD,
		"bilateral_sigma_color": DefaultBilateralSigmaColor,
		"bilateral_sigma_space": DefaultBilateralSigmaSpace,
		"morph_enabled":         false,
		"morph_operation":       DefaultMorphOperation,
		"morph_kernel":          DefaultMorphKernel,
		"morph_iterations":      DefaultMorphIterations,
	}
	if len(params) != len(want) {
		t.Fatalf("got %d params, want %d", len(params), len(want))
	}
	for key, wv := range want {
		if gv, ok := params[key]; !ok {
			t.Errorf("missing key %q", key)
		} else if gv != wv {
			t.Errorf("%s = %v, want %v", key, gv, wv)
		}
	}
}

func TestBuildEdgeParamsCoercion(t *testing.T) {
	params := BuildEdgeParams(map[string]interface{}{
		"cannyLow":    "30",
		"cannyHigh":   120.0,
		"maxContours": " 5 ",
		"blurEnabled": "false",
		"method":      "sobel",
	})
	if got := params["canny_low"]; got != 30 {
		t.Errorf("canny_low = %v, want 30", got)
	}
	if got := params["canny_high"]; got != 120 {
		t.Errorf("canny_high = %v, want 120", got)
	}
	if got := params["max_contours"]; got != 5 {
		t.Errorf("max_contours = %v, want 5", got)
	}
	if got := params["blur_enabled"]; got != false {
		t.Errorf("blur_enabled = %v, want false", got)
	}
	if got := params["method"]; got != "sobel" {
		t.Errorf("method = %v, want sobel", got)
	}
}

func TestBuildEdgeParamsBadCoercionFallsBack(t *testing.T) {
	params := BuildEdgeParams(map[string]interface{}{
		"cannyLow":     "not-a-number",
		"morphKernel":  []int{3},
		"blurEnabled":  "maybe",
		"method":       "",
		"sobelKernel":  nil,
	})
	if got := params["canny_low"]; got != DefaultCannyLow {
		t.Errorf("canny_low = %v, want default %d", got, DefaultCannyLow)
	}
	if got := params["morph_kernel"]; got != DefaultMorphKernel {
		t.Errorf("morph_kernel = %v, want default %d", got, DefaultMorphKernel)
	}
	if got := params["blur_enabled"]; got != true {
		t.Errorf("blur_enabled = %v, want default true", got)
	}
	if got := params["method"]; got != DefaultEdgeMethod {
		t.Errorf("method = %v, want default %q", got, DefaultEdgeMethod)
	}
	if got := params["sobel_kernel"]; got != DefaultSobelKernel {
		t.Errorf("sobel_kernel = %v, want default %d", got, DefaultSobelKernel)
	}
}
