package domain

import "go.trai.ch/zerr"

// Stage names one of the configurable build-stage scripts.
type Stage string

const (
	// StagePrebuild runs before fingerprinting; its output is discarded.
	StagePrebuild Stage = "prebuild"
	// StagePreprocessor supplies the flags passed to the preprocessor, compiler and linker driver.
	StagePreprocessor Stage = "preprocessor"
	// StageLinker supplies the flags appended after the objects on the link line.
	StageLinker Stage = "linker"
	// StagePostbuild runs after linking; its output is discarded.
	StagePostbuild Stage = "postbuild"
)

// Stages returns every stage in pipeline order.
func Stages() []Stage {
	return []Stage{StagePrebuild, StagePreprocessor, StageLinker, StagePostbuild}
}

// ParseStage converts a name into a Stage.
func ParseStage(name string) (Stage, error) {
	for _, s := range Stages() {
		if string(s) == name {
			return s, nil
		}
	}
	return "", zerr.With(ErrUnknownStage, "stage", name)
}

// String returns the stage name.
func (s Stage) String() string {
	return string(s)
}
