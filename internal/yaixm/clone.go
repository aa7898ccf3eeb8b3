package yaixm

import (
	"github.com/brunoga/deep"
	"github.com/rotisserie/eris"
)

// CloneFeatures returns a deep copy of features so that callers can merge
// and annotate volumes without touching the source dataset.
func CloneFeatures(features []Feature) ([]Feature, error) {
	if features == nil {
		return nil, nil
	}
	out, err := deep.Copy(features)
	if err != nil {
		return nil, eris.Wrap(err, "yaixm: clone features")
	}
	return out, nil
}

// CloneVolumes returns a deep copy of volumes.
func CloneVolumes(volumes []Volume) ([]Volume, error) {
	if volumes == nil {
		return nil, nil
	}
	out, err := deep.Copy(volumes)
	if err != nil {
		return nil, eris.Wrap(err, "yaixm: clone volumes")
	}
	return out, nil
}
