package orientation

import "testing"

func TestParseTransform(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code    string
		want    Transform
		wantErr bool
	}{
		{code: "A1", want: Transform{Flip: true, RotationDegrees: 0}},
		{code: "A2", want: Transform{Flip: true, RotationDegrees: 90}},
		{code: "A3", want: Transform{Flip: true, RotationDegrees: 180}},
		{code: "A4", want: Transform{Flip: true, RotationDegrees: 270}},
		{code: "B1", want: Transform{Flip: false, RotationDegrees: 0}},
		{code: "B4", want: Transform{Flip: false, RotationDegrees: 270}},
		{code: "C1", wantErr: true},
		{code: "A5", wantErr: true},
		{code: "", wantErr: true},
		{code: "A10", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.code, func(t *testing.T) {
			t.Parallel()
			got, err := ParseTransform(tt.code)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseTransform(%q) expected error, got %+v", tt.code, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTransform(%q) returned error: %v", tt.code, err)
			}
			if got != tt.want {
				t.Fatalf("ParseTransform(%q) = %+v, want %+v", tt.code, got, tt.want)
			}
		})
	}
}

func TestReferenceTableLookup(t *testing.T) {
	t.Parallel()

	raw := []byte(`[
		{
			"filename": "amos_0002.nii_slice-20.png",
			"label_info": [
				{"class_name": "kidney_left", "label": 3, "center_x": 310.5, "center_y": 240.0},
				{"class_name": "kidney_right", "label": 2, "center_x": 120.25, "center_y": 238.5},
				{"class_name": "inferior_vena_cava", "center_x": 210.0, "center_y": 200.0}
			]
		}
	]`)

	table, err := ParseReference(raw)
	if err != nil {
		t.Fatalf("ParseReference returned error: %v", err)
	}

	if !table.HasSlice("amos_0002.nii_slice-20.png") {
		t.Fatalf("expected slice to be present in reference table")
	}

	point, ok := table.Center("amos_0002.nii_slice-20.png", 3, "left kidney")
	if !ok || point.X != 310.5 {
		t.Fatalf("label lookup failed: point=%v ok=%t", point, ok)
	}

	// Midline organ without a label index resolves through its canonical name.
	point, ok = table.Center("amos_0002.nii_slice-20.png", 0, "inferior vena cava")
	if !ok || point.X != 210.0 {
		t.Fatalf("name fallback lookup failed: point=%v ok=%t", point, ok)
	}

	if _, ok := table.Center("missing.png", 3, "left kidney"); ok {
		t.Fatalf("lookup for unknown slice must fail")
	}
}

func TestParseReferenceRejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	// label_info entries must carry class_name and centers.
	raw := []byte(`[{"filename": "a.png", "label_info": [{"label": 2}]}]`)
	if _, err := ParseReference(raw); err == nil {
		t.Fatalf("expected validation error for incomplete label_info entry")
	}

	if _, err := ParseReference([]byte(`{"not": "an array"}`)); err == nil {
		t.Fatalf("expected validation error for non-array document")
	}
}

func TestCanonicalName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "left kidney", want: "kidney_left"},
		{in: "Right Adrenal Gland", want: "adrenal_gland_right"},
		{in: "inferior vena cava", want: "inferior_vena_cava"},
		{in: "  aorta  ", want: "aorta"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		if got := CanonicalName(tt.in); got != tt.want {
			t.Fatalf("CanonicalName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
