// internal/dataset/types.go
// Package dataset loads the benchmark's question/answer JSON into an
// immutable question corpus with precomputed dual-mode ground truth.
package dataset

import (
	"github.com/mwiater/mirpeval/internal/orientation"
)

// Structure is one anatomical structure as observed in a stored slice: its
// display name, anatomical label index (the segmentation gray value), and
// center of mass in the stored, possibly transformed, pixel space.
type Structure struct {
	Name   string
	Label  int
	Center orientation.Point
}

// QuestionRecord is one evaluable unit: a question about two structures in one
// image, with ground truth under both reference frames. Records are built once
// at load time and read-only downstream.
//
// AnatomyViewAnswer is nil for above/below questions (the dataset defines no
// anatomy-view label for them) and for slices absent from the reference table.
// It may disagree with ImageViewAnswer only for left/right questions on
// horizontally flipped slices.
type QuestionRecord struct {
	ImageID           string
	Question          string
	Object1           Structure
	Object2           Structure
	Relation          orientation.Relation
	Transform         orientation.Transform
	ImageViewAnswer   bool
	AnatomyViewAnswer *bool
}

type corpusKey struct {
	imageID  string
	question string
}

// Corpus is the ordered question corpus with O(1) lookup by image and
// question text.
type Corpus struct {
	Records []QuestionRecord
	index   map[corpusKey]int
}

// Lookup returns the record for the given image and question text.
func (c *Corpus) Lookup(imageID, question string) (*QuestionRecord, bool) {
	i, ok := c.index[corpusKey{imageID: imageID, question: question}]
	if !ok {
		return nil, false
	}
	return &c.Records[i], true
}

// Len returns the number of records in the corpus.
func (c *Corpus) Len() int {
	return len(c.Records)
}
