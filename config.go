package blingslang

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jeargle/blingslang/date"
	"gopkg.in/yaml.v3"
)

// DefaultCurrency is the display currency when the configuration sets none.
const DefaultCurrency = "USD"

// defaultHorizonYears is the stop-date horizon for trajectories that set none.
const defaultHorizonYears = 20

// The configuration document has four sections: accounts, groups,
// trajectories and plots. Parsing uses dedicated local structs with yaml tag
// annotations; the Plan holds the fully resolved object graph.

type accountConfig struct {
	Name           string         `yaml:"name"`
	Value          float64        `yaml:"value"`
	Growth         float64        `yaml:"growth"`
	SharePriceFrom string         `yaml:"share_price_from"`
	NumShares      float64        `yaml:"num_shares"`
	StrikePrice    float64        `yaml:"strike_price"`
	Updates        []updateConfig `yaml:"updates"`
}

type updateConfig struct {
	ValueChange float64 `yaml:"value_change"`
	Recurrence  string  `yaml:"recurrence"`
	// Day is a weekday name, a day-of-month or day-of-year integer, or a
	// literal date, depending on the recurrence.
	Day        yaml.Node `yaml:"day"`
	TransferTo string    `yaml:"transfer_to"`
}

type groupConfig struct {
	Name     string   `yaml:"name"`
	Accounts []string `yaml:"accounts"`
}

type trajectoryConfig struct {
	Name      string `yaml:"name"`
	Group     string `yaml:"group"`
	StartDate string `yaml:"start_date"`
	StopDate  string `yaml:"stop_date"`
}

type plotConfig struct {
	File       string              `yaml:"file"`
	Trajectory string              `yaml:"trajectory"`
	Accounts   []string            `yaml:"accounts"`
	Sums       map[string][]string `yaml:"sums"`
}

type config struct {
	Currency     string             `yaml:"currency"`
	Accounts     []accountConfig    `yaml:"accounts"`
	Groups       []groupConfig      `yaml:"groups"`
	Trajectories []trajectoryConfig `yaml:"trajectories"`
	Plots        []plotConfig       `yaml:"plots"`
}

// Plan is the fully resolved configuration: every account, group, trajectory
// and plot definition with all cross-references attached.
type Plan struct {
	Currency     string
	Accounts     []*Account
	Groups       []*AccountGroup
	Trajectories []*Trajectory
	Plots        []*Plot

	accounts     map[string]*Account
	groups       map[string]*AccountGroup
	trajectories map[string]*Trajectory
}

// Account returns the named account, or nil.
func (p *Plan) Account(name string) *Account { return p.accounts[name] }

// Group returns the named group, or nil.
func (p *Plan) Group(name string) *AccountGroup { return p.groups[name] }

// Trajectory returns the named trajectory, or nil.
func (p *Plan) Trajectory(name string) *Trajectory { return p.trajectories[name] }

// Load reads and resolves a plan configuration file.
func Load(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open configuration: %w", err)
	}
	defer f.Close()
	p, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration %q: %w", path, err)
	}
	return p, nil
}

// Parse decodes and resolves a plan configuration document.
//
// Construction is two-pass: every account is instantiated from its own
// definition first, then cross-account references (share-price sources and
// transfer targets) are resolved by name once every account exists.
func Parse(r io.Reader) (*Plan, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var c config
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("cannot parse yaml: %w", err)
	}

	plan := &Plan{
		Currency:     c.Currency,
		accounts:     make(map[string]*Account),
		groups:       make(map[string]*AccountGroup),
		trajectories: make(map[string]*Trajectory),
	}
	if plan.Currency == "" {
		plan.Currency = DefaultCurrency
	}

	// Pass 1: instantiate accounts.
	for _, ac := range c.Accounts {
		if ac.Name == "" {
			return nil, fmt.Errorf("account with no name")
		}
		if _, exists := plan.accounts[ac.Name]; exists {
			return nil, fmt.Errorf("account %q: defined twice", ac.Name)
		}
		a := &Account{
			Name:        ac.Name,
			Value:       ac.Value,
			Growth:      ac.Growth,
			NumShares:   ac.NumShares,
			StrikePrice: ac.StrikePrice,
		}
		plan.accounts[a.Name] = a
		plan.Accounts = append(plan.Accounts, a)
	}

	// Pass 2: resolve cross-account references and build updates.
	for _, ac := range c.Accounts {
		a := plan.accounts[ac.Name]
		if ac.SharePriceFrom != "" {
			src, ok := plan.accounts[ac.SharePriceFrom]
			if !ok {
				return nil, fmt.Errorf("account %q: share_price_from references undefined account %q", a.Name, ac.SharePriceFrom)
			}
			if src == a {
				return nil, fmt.Errorf("account %q: share_price_from references itself", a.Name)
			}
			if a.Growth != 0 {
				return nil, fmt.Errorf("account %q: a share-price account cannot have a growth rate", a.Name)
			}
			if len(ac.Updates) > 0 {
				return nil, fmt.Errorf("account %q: a share-price account cannot have updates", a.Name)
			}
			if a.NumShares == 0 {
				return nil, fmt.Errorf("account %q: a share-price account requires num_shares", a.Name)
			}
			a.Source = src
		}
		for i, uc := range ac.Updates {
			u, err := buildUpdate(uc, plan)
			if err != nil {
				return nil, fmt.Errorf("account %q: update %d: %w", a.Name, i+1, err)
			}
			a.Updates = append(a.Updates, u)
		}
	}

	// Checks that need every share_price_from resolved: chains are exactly
	// one level deep, and a share-price account cannot receive transfers
	// (its value is recomputed from its source every day).
	for _, a := range plan.Accounts {
		if a.Source != nil && a.Source.Derived() {
			return nil, fmt.Errorf("account %q: share_price_from account %q is itself a share-price account", a.Name, a.Source.Name)
		}
		for _, u := range a.Updates {
			if u.Target != nil && u.Target.Derived() {
				return nil, fmt.Errorf("account %q: transfer_to account %q is a share-price account", a.Name, u.Target.Name)
			}
		}
	}

	for _, gc := range c.Groups {
		if gc.Name == "" {
			return nil, fmt.Errorf("group with no name")
		}
		if _, exists := plan.groups[gc.Name]; exists {
			return nil, fmt.Errorf("group %q: defined twice", gc.Name)
		}
		if len(gc.Accounts) == 0 {
			return nil, fmt.Errorf("group %q: has no accounts", gc.Name)
		}
		g := &AccountGroup{Name: gc.Name}
		for _, name := range gc.Accounts {
			a, ok := plan.accounts[name]
			if !ok {
				return nil, fmt.Errorf("group %q: references undefined account %q", gc.Name, name)
			}
			g.Accounts = append(g.Accounts, a)
		}
		plan.groups[g.Name] = g
		plan.Groups = append(plan.Groups, g)
	}

	for _, tc := range c.Trajectories {
		t, err := buildTrajectory(tc, plan)
		if err != nil {
			return nil, err
		}
		if _, exists := plan.trajectories[t.Name]; exists {
			return nil, fmt.Errorf("trajectory %q: defined twice", t.Name)
		}
		plan.trajectories[t.Name] = t
		plan.Trajectories = append(plan.Trajectories, t)
	}

	for _, pc := range c.Plots {
		plot, err := buildPlot(pc, plan)
		if err != nil {
			return nil, err
		}
		plan.Plots = append(plan.Plots, plot)
	}

	return plan, nil
}

func buildUpdate(uc updateConfig, plan *Plan) (*AccountUpdate, error) {
	rec, err := ParseRecurrence(uc.Recurrence)
	if err != nil {
		return nil, err
	}
	u := &AccountUpdate{Amount: uc.ValueChange, Recurrence: rec}

	day := strings.TrimSpace(uc.Day.Value)
	if day == "" && rec != Daily {
		return nil, fmt.Errorf("%s recurrence requires a day", rec)
	}
	switch rec {
	case Once:
		on, err := date.Parse(day)
		if err != nil {
			return nil, fmt.Errorf("once recurrence requires a literal date: %w", err)
		}
		u.On = on
	case Daily:
		// no parameter
	case Weekly, Biweekly:
		wd, err := parseWeekday(day)
		if err != nil {
			return nil, err
		}
		u.Day = wd
	case Monthly:
		d, err := strconv.Atoi(day)
		if err != nil || d < 1 || d > 31 {
			return nil, fmt.Errorf("monthly recurrence requires a day of month 1-31, got %q", day)
		}
		u.Day = d
	case Yearly:
		d, err := strconv.Atoi(day)
		if err != nil || d < 1 || d > 366 {
			return nil, fmt.Errorf("yearly recurrence requires a day of year 1-366, got %q", day)
		}
		u.Day = d
	}

	if uc.TransferTo != "" {
		target, ok := plan.accounts[uc.TransferTo]
		if !ok {
			return nil, fmt.Errorf("transfer_to references undefined account %q", uc.TransferTo)
		}
		u.Target = target
	}
	return u, nil
}

// parseWeekday parses a weekday name (or ISO number) into 1 (Monday) to 7 (Sunday).
func parseWeekday(s string) (int, error) {
	switch strings.ToLower(s) {
	case "monday", "mon", "1":
		return 1, nil
	case "tuesday", "tue", "2":
		return 2, nil
	case "wednesday", "wed", "3":
		return 3, nil
	case "thursday", "thu", "4":
		return 4, nil
	case "friday", "fri", "5":
		return 5, nil
	case "saturday", "sat", "6":
		return 6, nil
	case "sunday", "sun", "7":
		return 7, nil
	default:
		return 0, fmt.Errorf("unknown weekday %q", s)
	}
}

func buildTrajectory(tc trajectoryConfig, plan *Plan) (*Trajectory, error) {
	if tc.Name == "" {
		return nil, fmt.Errorf("trajectory with no name")
	}
	g, ok := plan.groups[tc.Group]
	if !ok {
		return nil, fmt.Errorf("trajectory %q: references undefined group %q", tc.Name, tc.Group)
	}

	start := date.Today()
	if tc.StartDate != "" {
		var err error
		if start, err = date.Parse(tc.StartDate); err != nil {
			return nil, fmt.Errorf("trajectory %q: invalid start_date: %w", tc.Name, err)
		}
	}
	stop := start.AddYears(defaultHorizonYears)
	if tc.StopDate != "" {
		var err error
		if stop, err = date.Parse(tc.StopDate); err != nil {
			return nil, fmt.Errorf("trajectory %q: invalid stop_date: %w", tc.Name, err)
		}
	}

	// Each trajectory simulates its own copy of the group: update schedules
	// are mutable state consumed by a run, and groups may be shared.
	return NewTrajectory(tc.Name, g.clone(), start, stop)
}

func buildPlot(pc plotConfig, plan *Plan) (*Plot, error) {
	if pc.File == "" {
		return nil, fmt.Errorf("plot with no file name")
	}
	t, ok := plan.trajectories[pc.Trajectory]
	if !ok {
		return nil, fmt.Errorf("plot %q: references undefined trajectory %q", pc.File, pc.Trajectory)
	}
	members := make(map[string]bool, len(t.Group.Accounts))
	for _, a := range t.Group.Accounts {
		members[a.Name] = true
	}
	for _, name := range pc.Accounts {
		if !members[name] {
			return nil, fmt.Errorf("plot %q: account %q is not in trajectory %q", pc.File, name, t.Name)
		}
	}
	for sum, parts := range pc.Sums {
		for _, name := range parts {
			if !members[name] {
				return nil, fmt.Errorf("plot %q: sum %q: account %q is not in trajectory %q", pc.File, sum, name, t.Name)
			}
		}
	}
	return &Plot{
		File:       pc.File,
		Trajectory: t,
		Accounts:   append([]string(nil), pc.Accounts...),
		Sums:       pc.Sums,
	}, nil
}
