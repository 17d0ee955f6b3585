package stage

import "fmt"

// Stage is one phase of the HomeRun journey. The order is fixed; use Next
// to advance rather than comparing raw values.
type Stage string

const (
	AtBat      Stage = "at_bat"
	FirstBase  Stage = "first_base"
	SecondBase Stage = "second_base"
	ThirdBase  Stage = "third_base"
	HomePlate  Stage = "home_plate"
	Completed  Stage = "completed"
)

// Order is the linear journey sequence, excluding the terminal state.
var Order = []Stage{AtBat, FirstBase, SecondBase, ThirdBase, HomePlate}

var labels = map[Stage]string{
	AtBat:      "At Bat",
	FirstBase:  "First Base",
	SecondBase: "Second Base",
	ThirdBase:  "Third Base",
	HomePlate:  "Home Plate",
	Completed:  "Completed",
}

var descriptions = map[Stage]string{
	AtBat:      "Discovering WHY - Your deepest motivation",
	FirstBase:  "Discovering WHO - Your authentic identity",
	SecondBase: "Discovering WHAT - Your desires and fears",
	ThirdBase:  "Mapping HOW - Your action plan",
	HomePlate:  "Why it MATTERS - Your legacy and sustainability",
}

// progress is the journey completion percentage after finishing each stage.
var progress = map[Stage]int{
	AtBat:      20,
	FirstBase:  40,
	SecondBase: 60,
	ThirdBase:  80,
	HomePlate:  100,
	Completed:  100,
}

func Parse(s string) (Stage, error) {
	st := Stage(s)
	if _, ok := labels[st]; !ok {
		return "", fmt.Errorf("unknown stage: %q", s)
	}
	return st, nil
}

func (s Stage) Valid() bool {
	_, ok := labels[s]
	return ok
}

func (s Stage) Label() string       { return labels[s] }
func (s Stage) Description() string { return descriptions[s] }
func (s Stage) Progress() int       { return progress[s] }

// Terminal reports whether the journey is over.
func (s Stage) Terminal() bool { return s == Completed }

// Next returns the following stage in the fixed order. Advancing past
// HomePlate (or from Completed) yields Completed.
func (s Stage) Next() Stage {
	for i, st := range Order {
		if st == s {
			if i == len(Order)-1 {
				return Completed
			}
			return Order[i+1]
		}
	}
	return Completed
}

// Ordinal is the 0-based position in the journey; Completed sorts last.
func (s Stage) Ordinal() int {
	for i, st := range Order {
		if st == s {
			return i
		}
	}
	return len(Order)
}
