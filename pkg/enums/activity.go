package enums

// Activity tags the sports a product is designed for. Products may carry tags
// outside this list; the list only drives the storefront filter menu.
type Activity string

const (
	ActivityYoga     Activity = "Yoga"
	ActivityRunning  Activity = "Running"
	ActivityTraining Activity = "Training"
	ActivityCycling  Activity = "Cycling"
	ActivitySwimming Activity = "Swimming"
	ActivityHiking   Activity = "Hiking"
	ActivityDance    Activity = "Dance"
	ActivityTennis   Activity = "Tennis"
	ActivityGolf     Activity = "Golf"
)

var knownActivities = []Activity{
	ActivityYoga,
	ActivityRunning,
	ActivityTraining,
	ActivityCycling,
	ActivitySwimming,
	ActivityHiking,
	ActivityDance,
	ActivityTennis,
	ActivityGolf,
}

// Activities returns the menu of known activity tags.
func Activities() []Activity {
	out := make([]Activity, len(knownActivities))
	copy(out, knownActivities)
	return out
}

// String implements fmt.Stringer.
func (a Activity) String() string {
	return string(a)
}

// IsKnown reports whether the tag is part of the filter menu.
func (a Activity) IsKnown() bool {
	for _, candidate := range knownActivities {
		if candidate == a {
			return true
		}
	}
	return false
}
