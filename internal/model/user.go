package model

// User is a group of identical households or equivalent consumer units
// sharing the same appliance mix and preference index (spec.md §3).
type User struct {
	Name           string
	NumUsers       int
	UserPreference int // 0 means no preference segmentation
	Appliances     []*Appliance
}

// NewUser validates numUsers and userPreference and returns a User with no
// appliances. Use AddAppliance to populate it.
func NewUser(name string, numUsers, userPreference int) (*User, error) {
	if numUsers < 1 {
		return nil, &ConfigurationError{Subject: name, Message: "num_users must be >= 1"}
	}
	if userPreference < 0 {
		return nil, &ConfigurationError{Subject: name, Message: "user_preference must be >= 0"}
	}
	return &User{Name: name, NumUsers: numUsers, UserPreference: userPreference}, nil
}

// AddAppliance attaches cfg to u, setting the appliance's owner back-reference.
func (u *User) AddAppliance(cfg *ApplianceConfig) *Appliance {
	a := &Appliance{Config: cfg, Owner: u}
	u.Appliances = append(u.Appliances, a)
	return a
}

// MaximumProfile returns the per-minute theoretical maximum power this user
// class could draw, assuming every appliance copy were on simultaneously at
// its year-mean rated power throughout its configured windows (spec.md
// §4.1: "mean(power) · N at every minute contained in any of its configured
// windows"). It does not vary by day, since it feeds the once-per-run
// peak-window estimate.
func (u *User) MaximumProfile() [MinutesPerDay]float64 {
	var profile [MinutesPerDay]float64
	for _, a := range u.Appliances {
		meanPower := meanOf(a.Config.Power[:])
		contribution := meanPower * float64(a.Config.Number) * float64(u.NumUsers)
		for _, w := range []Window{a.Config.Window1, a.Config.Window2, a.Config.Window3} {
			w = w.Clamp(0, MinutesPerDay)
			for m := w.Start; m < w.End; m++ {
				profile[m] += contribution
			}
		}
	}
	return profile
}

func meanOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// UseCase is a community of users sharing a day-type context (spec.md §3).
type UseCase struct {
	Name  string
	Users []*User
}

// NewUseCase returns an empty UseCase. Use AddUser to populate it.
func NewUseCase(name string) *UseCase {
	return &UseCase{Name: name}
}

// AddUser appends u to the use case and returns it for chaining.
func (uc *UseCase) AddUser(u *User) *UseCase {
	uc.Users = append(uc.Users, u)
	return uc
}

// MaximumProfile returns the community-wide theoretical maximum profile, the
// sum of every user class's MaximumProfile (spec.md §4.1 input to the
// peak-window estimator).
func (uc *UseCase) MaximumProfile() [MinutesPerDay]float64 {
	var total [MinutesPerDay]float64
	for _, u := range uc.Users {
		profile := u.MaximumProfile()
		for m := range total {
			total[m] += profile[m]
		}
	}
	return total
}
