// internal/dataset/load.go
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/mwiater/mirpeval/internal/orientation"
)

// datasetSchema rejects structurally broken dataset JSON before any record is
// built. Ground truth correctness is safety-critical to result validity, so
// the load path fails fast instead of skipping bad records.
const datasetSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["filename", "rotate_flip_short", "question_answer"],
		"properties": {
			"filename": {"type": "string", "minLength": 1},
			"base_name": {"type": "string"},
			"slice_index": {"type": "integer"},
			"classes_count": {"type": "integer"},
			"multiple_components_same_label": {"type": "boolean"},
			"rotate_flip_short": {"type": "string"},
			"rotate_flip_long": {"type": "string"},
			"image_size": {"type": "integer", "minimum": 1},
			"question_answer": {
				"type": "array",
				"items": {
					"type": "object",
					"required": [
						"object1_name", "object2_name",
						"object1_gray", "object2_gray",
						"object1_center_x", "object1_center_y",
						"object2_center_x", "object2_center_y",
						"question", "answer"
					],
					"properties": {
						"object1_name": {"type": "string", "minLength": 1},
						"object2_name": {"type": "string", "minLength": 1},
						"object1_gray": {"type": "integer"},
						"object2_gray": {"type": "integer"},
						"object1_center_x": {"type": "number"},
						"object1_center_y": {"type": "number"},
						"object2_center_x": {"type": "number"},
						"object2_center_y": {"type": "number"},
						"question": {"type": "string", "minLength": 1},
						"answer": {"type": "integer", "enum": [0, 1]}
					}
				}
			}
		}
	}
}`

type sliceEntry struct {
	Filename                    string           `json:"filename"`
	BaseName                    string           `json:"base_name"`
	SliceIndex                  int              `json:"slice_index"`
	ClassesCount                int              `json:"classes_count"`
	MultipleComponentsSameLabel bool             `json:"multiple_components_same_label"`
	RotateFlipShort             string           `json:"rotate_flip_short"`
	RotateFlipLong              string           `json:"rotate_flip_long"`
	ImageSize                   int              `json:"image_size,omitempty"`
	QuestionAnswer              []questionAnswer `json:"question_answer"`
}

type questionAnswer struct {
	Object1Name    string  `json:"object1_name"`
	Object2Name    string  `json:"object2_name"`
	Object1Gray    int     `json:"object1_gray"`
	Object2Gray    int     `json:"object2_gray"`
	Object1CenterX float64 `json:"object1_center_x"`
	Object1CenterY float64 `json:"object1_center_y"`
	Object2CenterX float64 `json:"object2_center_x"`
	Object2CenterY float64 `json:"object2_center_y"`
	Question       string  `json:"question"`
	Answer         int     `json:"answer"`
}

// MalformedDatasetError reports every structural or geometric violation found
// in the dataset JSON. The load aborts with the full list rather than
// silently skipping affected records.
type MalformedDatasetError struct {
	Violations []string
}

func (e *MalformedDatasetError) Error() string {
	switch len(e.Violations) {
	case 0:
		return "malformed dataset"
	case 1:
		return fmt.Sprintf("malformed dataset: %s", e.Violations[0])
	default:
		return fmt.Sprintf("malformed dataset: %d violations:\n  %s",
			len(e.Violations), strings.Join(e.Violations, "\n  "))
	}
}

// Load reads, validates, and indexes the dataset JSON. The reference table is
// optional: without it no anatomy-view ground truth is computed and
// anatomy-view scoring will skip every record.
func Load(path string, ref *orientation.ReferenceTable) (*Corpus, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading dataset file: %w", err)
	}
	return Parse(raw, ref)
}

// Parse builds the question corpus from raw dataset JSON.
func Parse(raw []byte, ref *orientation.ReferenceTable) (*Corpus, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(datasetSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return nil, fmt.Errorf("error validating dataset JSON: %w", err)
	}
	if !result.Valid() {
		var violations []string
		for _, desc := range result.Errors() {
			violations = append(violations, desc.String())
		}
		return nil, &MalformedDatasetError{Violations: violations}
	}

	var entries []sliceEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("error parsing dataset JSON: %w", err)
	}

	corpus := &Corpus{index: make(map[corpusKey]int)}
	var violations []string

	for _, entry := range entries {
		transform, err := orientation.ParseTransform(entry.RotateFlipShort)
		if err != nil {
			violations = append(violations, fmt.Sprintf("%s: %v", entry.Filename, err))
			continue
		}

		for _, qa := range entry.QuestionAnswer {
			record, errs := buildRecord(entry, qa, transform, ref)
			if len(errs) > 0 {
				violations = append(violations, errs...)
				continue
			}

			key := corpusKey{imageID: entry.Filename, question: qa.Question}
			if _, exists := corpus.index[key]; exists {
				violations = append(violations, fmt.Sprintf("%s: duplicate question %q", entry.Filename, qa.Question))
				continue
			}
			corpus.index[key] = len(corpus.Records)
			corpus.Records = append(corpus.Records, record)
		}
	}

	if len(violations) > 0 {
		return nil, &MalformedDatasetError{Violations: violations}
	}
	return corpus, nil
}

func buildRecord(entry sliceEntry, qa questionAnswer, transform orientation.Transform, ref *orientation.ReferenceTable) (QuestionRecord, []string) {
	var errs []string
	tag := fmt.Sprintf("%s %q", entry.Filename, qa.Question)

	if qa.Object1Gray == qa.Object2Gray {
		errs = append(errs, fmt.Sprintf("%s: identical structures (label %d)", tag, qa.Object1Gray))
	}

	object1 := Structure{
		Name:   qa.Object1Name,
		Label:  qa.Object1Gray,
		Center: orientation.Point{X: qa.Object1CenterX, Y: qa.Object1CenterY},
	}
	object2 := Structure{
		Name:   qa.Object2Name,
		Label:  qa.Object2Gray,
		Center: orientation.Point{X: qa.Object2CenterX, Y: qa.Object2CenterY},
	}

	for i, object := range []Structure{object1, object2} {
		if object.Center.X < 0 || object.Center.Y < 0 {
			errs = append(errs, fmt.Sprintf("%s: object%d center (%g, %g) is negative", tag, i+1, object.Center.X, object.Center.Y))
		}
		if entry.ImageSize > 0 && (object.Center.X >= float64(entry.ImageSize) || object.Center.Y >= float64(entry.ImageSize)) {
			errs = append(errs, fmt.Sprintf("%s: object%d center (%g, %g) is outside the %dpx image", tag, i+1, object.Center.X, object.Center.Y, entry.ImageSize))
		}
	}

	relation, err := orientation.ParseRelation(qa.Question)
	if err != nil {
		errs = append(errs, fmt.Sprintf("%s: %v", tag, err))
	}

	if len(errs) > 0 {
		return QuestionRecord{}, errs
	}

	// The stored answer was generated from the coordinates as rendered, so it
	// must agree with the relation resolved from those same coordinates.
	imageView := orientation.ImageViewHolds(object1.Center, object2.Center, relation)
	if imageView != (qa.Answer == 1) {
		return QuestionRecord{}, []string{fmt.Sprintf("%s: answer %d is inconsistent with stored geometry", tag, qa.Answer)}
	}

	record := QuestionRecord{
		ImageID:         entry.Filename,
		Question:        qa.Question,
		Object1:         object1,
		Object2:         object2,
		Relation:        relation,
		Transform:       transform,
		ImageViewAnswer: imageView,
	}
	record.AnatomyViewAnswer = anatomyAnswer(entry, record, ref)
	return record, nil
}

// anatomyAnswer resolves the anatomy-view ground truth for lateral questions
// from the standard-orientation reference table. It looks up centers by the
// stored filename first and the unrotated base name second.
func anatomyAnswer(entry sliceEntry, record QuestionRecord, ref *orientation.ReferenceTable) *bool {
	if ref == nil || !record.Relation.Lateral() {
		return nil
	}

	for _, filename := range []string{entry.Filename, entry.BaseName} {
		if filename == "" || !ref.HasSlice(filename) {
			continue
		}
		c1, ok1 := ref.Center(filename, record.Object1.Label, record.Object1.Name)
		c2, ok2 := ref.Center(filename, record.Object2.Label, record.Object2.Name)
		if !ok1 || !ok2 {
			continue
		}
		holds, defined := orientation.AnatomyViewHolds(c1, c2, record.Relation)
		if !defined {
			return nil
		}
		return &holds
	}
	return nil
}
