// Package catalog loads and saves appliance catalogs in the tabular (CSV)
// shape spec.md §6 defines, parses power-series inputs, and writes profile
// results to CSV. These are the "external collaborators" spec.md §1 lists
// as out of scope for redesign; they exist here only so the core has
// something concrete to be driven from.
package catalog

// columns is the full column order SaveCSV writes (spec.md §6); LoadCSV
// requires only the first 18 (through wd_we_type). Window and duty-cycle
// columns come in the fixed pairs/groups the spec enumerates.
var columns = []string{
	"user_name", "num_users", "user_preference",
	"name", "number", "power",
	"num_windows", "random_var_w",
	"func_time", "time_fraction_random_variability", "func_cycle",
	"fixed", "fixed_cycle", "occasional_use", "flat", "thermal_p_var",
	"pref_index", "wd_we_type",
	"window_1_start", "window_1_end",
	"window_2_start", "window_2_end",
	"window_3_start", "window_3_end",
	"p_11", "t_11", "p_12", "t_12", "r_c1", "cw_11_start", "cw_11_end", "cw_12_start", "cw_12_end",
	"p_21", "t_21", "p_22", "t_22", "r_c2", "cw_21_start", "cw_21_end", "cw_22_start", "cw_22_end",
	"p_31", "t_31", "p_32", "t_32", "r_c3", "cw_31_start", "cw_31_end", "cw_32_start", "cw_32_end",
}

func columnIndex() map[string]int {
	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		idx[c] = i
	}
	return idx
}
