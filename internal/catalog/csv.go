package catalog

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"loadsim/internal/model"
)

// LoadCSV reconstructs a UseCase from the tabular catalog at path, grouping
// rows by user_name in file order (spec.md §6: "reconstructs Users and
// Appliances in the row order given, grouping by user_name"). All rows of a
// user must agree on num_users and user_preference.
func LoadCSV(path string) (*model.UseCase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &model.ConfigurationError{Message: "catalog is empty"}
	}

	header := records[0]
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}
	for _, required := range columns[:18] { // through wd_we_type: genuinely mandatory
		if _, ok := col[required]; !ok {
			return nil, &model.ConfigurationError{Message: "missing mandatory column " + required}
		}
	}

	uc := model.NewUseCase("catalog")
	users := map[string]*model.User{}
	var order []string

	for _, row := range records[1:] {
		get := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		userName := get("user_name")
		numUsers, err := parseIntDefault(get("num_users"), 0)
		if err != nil {
			return nil, &model.ConfigurationError{Subject: userName, Message: "num_users: " + err.Error()}
		}
		userPref, err := parseIntDefault(get("user_preference"), 0)
		if err != nil {
			return nil, &model.ConfigurationError{Subject: userName, Message: "user_preference: " + err.Error()}
		}

		u, exists := users[userName]
		if !exists {
			u, err = model.NewUser(userName, numUsers, userPref)
			if err != nil {
				return nil, err
			}
			users[userName] = u
			order = append(order, userName)
		} else if u.NumUsers != numUsers || u.UserPreference != userPref {
			return nil, &model.ConfigurationError{Subject: userName, Message: "rows disagree on num_users/user_preference"}
		}

		cfg, err := rowToApplianceConfig(get)
		if err != nil {
			return nil, err
		}
		u.AddAppliance(cfg)
	}

	for _, name := range order {
		uc.AddUser(users[name])
	}
	return uc, nil
}

func rowToApplianceConfig(get func(string) string) (*model.ApplianceConfig, error) {
	name := get("name")

	power, err := parsePowerCell(get("power"))
	if err != nil {
		return nil, &model.ConfigurationError{Subject: name, Message: "power: " + err.Error()}
	}

	in := model.ApplianceConfigInput{Name: name, Power: power}

	var perr error
	mustInt := func(col string, dflt int) int {
		v, e := parseIntDefault(get(col), dflt)
		if e != nil && perr == nil {
			perr = &model.ConfigurationError{Subject: name, Message: col + ": " + e.Error()}
		}
		return v
	}
	mustFloat := func(col string, dflt float64) float64 {
		v, e := parseFloatDefault(get(col), dflt)
		if e != nil && perr == nil {
			perr = &model.ConfigurationError{Subject: name, Message: col + ": " + e.Error()}
		}
		return v
	}
	mustBool := func(col string, dflt bool) bool {
		v, e := parseBoolDefault(get(col), dflt)
		if e != nil && perr == nil {
			perr = &model.ConfigurationError{Subject: name, Message: col + ": " + e.Error()}
		}
		return v
	}
	window := func(startCol, endCol string) model.Window {
		return model.Window{Start: mustInt(startCol, 0), End: mustInt(endCol, 0)}
	}
	cycle := func(k string) model.DutyCycleConfig {
		return model.DutyCycleConfig{
			PA: mustFloat("p_"+k+"1", 0), TA: mustInt("t_"+k+"1", 0),
			PB: mustFloat("p_"+k+"2", 0), TB: mustInt("t_"+k+"2", 0),
			RC:  mustFloat("r_c"+k, 0),
			CwA: window("cw_"+k+"1_start", "cw_"+k+"1_end"),
			CwB: window("cw_"+k+"2_start", "cw_"+k+"2_end"),
		}
	}

	in.Number = mustInt("number", 1)
	in.NumWindows = mustInt("num_windows", 1)
	in.Window1 = window("window_1_start", "window_1_end")
	in.Window2 = window("window_2_start", "window_2_end")
	in.Window3 = window("window_3_start", "window_3_end")
	in.RandomVarW = mustFloat("random_var_w", 0)
	in.FuncTime = mustInt("func_time", 0)
	in.TimeFractionRandomVariability = mustFloat("time_fraction_random_variability", 0)
	in.FuncCycle = mustInt("func_cycle", 1)
	in.Fixed = mustBool("fixed", false)
	in.Flat = mustBool("flat", false)
	in.FixedCycle = mustInt("fixed_cycle", 0)
	in.Cycle1 = cycle("1")
	in.Cycle2 = cycle("2")
	in.Cycle3 = cycle("3")
	in.ThermalPVar = mustFloat("thermal_p_var", 0)
	in.OccasionalUse = mustFloat("occasional_use", 1)
	in.PrefIndex = mustInt("pref_index", 0)
	in.WdWeType = mustInt("wd_we_type", 2)

	if perr != nil {
		return nil, perr
	}
	return model.NewApplianceConfig(in)
}

// SaveCSV writes uc back out in the same column shape LoadCSV reads
// (spec.md §8 P9: "save -> load -> save yields an identical table").
func SaveCSV(path string, uc *model.UseCase) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(columns); err != nil {
		return err
	}

	for _, u := range uc.Users {
		for _, a := range u.Appliances {
			row := applianceConfigToRow(u, a.Config)
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return w.Error()
}

func applianceConfigToRow(u *model.User, c *model.ApplianceConfig) []string {
	put := map[string]string{
		"user_name":       u.Name,
		"num_users":       strconv.Itoa(u.NumUsers),
		"user_preference": strconv.Itoa(u.UserPreference),
		"name":            c.Name,
		"number":          strconv.Itoa(c.Number),
		"power":           formatFloat(meanPower(c)),
		"num_windows":     strconv.Itoa(c.NumWindows),
		"random_var_w":    formatFloat(c.RandomVarW),

		"func_time":                         strconv.Itoa(c.FuncTime),
		"time_fraction_random_variability":  formatFloat(c.TimeFractionRandomVariability),
		"func_cycle":                        strconv.Itoa(c.FuncCycle),
		"fixed":                             strconv.FormatBool(c.Fixed),
		"fixed_cycle":                       strconv.Itoa(c.FixedCycle),
		"occasional_use":                    formatFloat(c.OccasionalUse),
		"flat":                              strconv.FormatBool(c.Flat),
		"thermal_p_var":                     formatFloat(c.ThermalPVar),
		"pref_index":                        strconv.Itoa(c.PrefIndex),
		"wd_we_type":                        strconv.Itoa(c.WdWeType),

		"window_1_start": strconv.Itoa(c.Window1.Start), "window_1_end": strconv.Itoa(c.Window1.End),
		"window_2_start": strconv.Itoa(c.Window2.Start), "window_2_end": strconv.Itoa(c.Window2.End),
		"window_3_start": strconv.Itoa(c.Window3.Start), "window_3_end": strconv.Itoa(c.Window3.End),
	}
	putCycle("1", c.Cycle1, put)
	putCycle("2", c.Cycle2, put)
	putCycle("3", c.Cycle3, put)

	row := make([]string, len(columns))
	for i, colName := range columns {
		row[i] = put[colName]
	}
	return row
}

func putCycle(k string, c model.DutyCycleConfig, put map[string]string) {
	put["p_"+k+"1"] = formatFloat(c.PA)
	put["t_"+k+"1"] = strconv.Itoa(c.TA)
	put["p_"+k+"2"] = formatFloat(c.PB)
	put["t_"+k+"2"] = strconv.Itoa(c.TB)
	put["r_c"+k] = formatFloat(c.RC)
	put["cw_"+k+"1_start"] = strconv.Itoa(c.CwA.Start)
	put["cw_"+k+"1_end"] = strconv.Itoa(c.CwA.End)
	put["cw_"+k+"2_start"] = strconv.Itoa(c.CwB.Start)
	put["cw_"+k+"2_end"] = strconv.Itoa(c.CwB.End)
}

func meanPower(c *model.ApplianceConfig) float64 {
	var sum float64
	for _, p := range c.Power {
		sum += p
	}
	return sum / float64(len(c.Power))
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
