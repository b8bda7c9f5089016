// internal/orientation/transform.go
package orientation

import "fmt"

// Transform describes how the canonical slice was rotated and flipped to
// produce the stored image. The same transform applies to both structures in
// a question.
type Transform struct {
	Flip            bool `json:"flip"`
	RotationDegrees int  `json:"rotationDegrees"`
}

// ParseTransform decodes the dataset's short transform code. Codes A1..A4 are
// horizontally flipped at 0/90/180/270 degrees, B1..B4 are unflipped at the
// same angles.
func ParseTransform(code string) (Transform, error) {
	if len(code) != 2 {
		return Transform{}, fmt.Errorf("invalid rotate/flip code %q", code)
	}

	var flip bool
	switch code[0] {
	case 'A':
		flip = true
	case 'B':
		flip = false
	default:
		return Transform{}, fmt.Errorf("invalid rotate/flip code %q", code)
	}

	var degrees int
	switch code[1] {
	case '1':
		degrees = 0
	case '2':
		degrees = 90
	case '3':
		degrees = 180
	case '4':
		degrees = 270
	default:
		return Transform{}, fmt.Errorf("invalid rotate/flip code %q", code)
	}

	return Transform{Flip: flip, RotationDegrees: degrees}, nil
}

// String renders the transform the way the dataset's long description does.
func (t Transform) String() string {
	if t.Flip {
		return fmt.Sprintf("flipped, rotated %d°", t.RotationDegrees)
	}
	return fmt.Sprintf("unflipped, rotated %d°", t.RotationDegrees)
}
