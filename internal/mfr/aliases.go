package mfr

// Canonical is the canonical identity of a motor manufacturer
type Canonical struct {
	Name   string
	Abbrev string
}

// builtinAliases returns the curated alias table mapping the manufacturer
// spellings found in the wild (RASP header codes, file names, historic
// abbreviations) to canonical identities. Derived from the mappings
// OpenRocket ships for motor lookup.
func builtinAliases() map[string]Canonical {
	m := make(map[string]Canonical)
	add := func(c Canonical, aliases ...string) {
		for _, a := range aliases {
			m[a] = c
		}
	}

	aerotech := Canonical{"AeroTech", "AeroTech"}
	for _, prefix := range []string{"a", "at", "aero", "aerot", "aerotech"} {
		add(aerotech,
			prefix,
			prefix+"-rms", prefix+"-rcs",
			prefix+"_rms", prefix+"_rcs",
			"rcs-"+prefix, "rcs_"+prefix,
			prefix+"/rcs", "rcs/"+prefix,
			prefix+"-apogee", prefix+"_apogee")
	}
	add(aerotech, "isp", "aerotech/rcs", "rcs/aerotech")

	add(Canonical{"Alpha Hybrids", "Alpha"},
		"ahr", "alpha", "alpha hybrid", "alpha hybrids",
		"alpha hybrids rocketry", "alpha hybrid rocketry llc", "alpha hybrid rocketry")

	add(Canonical{"Animal Motor Works", "AMW"},
		"amw", "aw", "animal", "animal motor works", "animal_motor_works")

	add(Canonical{"Apogee Components", "Apogee"},
		"ap", "apog", "p", "apogee")

	add(Canonical{"Cesaroni Technology", "Cesaroni"},
		"ces", "cesaroni", "cesaroni technology incorporated", "cti",
		"cs", "csr", "pro38", "abc", "cesaroni technology",
		"cesaroni technology inc.", "cesaroni technology inc",
		"cesaroni_technology", "cesaroni_technology_inc.", "cesaroni_technology_inc")

	add(Canonical{"Contrail Rockets", "Contrail"},
		"cr", "contr", "contrail", "contrail rocket", "contrail rockets")

	add(Canonical{"Estes Industries", "Estes"},
		"e", "es", "estes", "estes industries")

	add(Canonical{"Ellis Mountain", "Ellis"},
		"em", "ellis", "ellis mountain rocket", "ellis mountain rockets", "ellis mountain")

	add(Canonical{"Gorilla Rocket Motors", "Gorilla"},
		"gr", "gm", "gorilla", "gorilla rocket", "gorilla rockets",
		"gorilla motor", "gorilla motors", "gorilla rocket motor",
		"gorilla rocket motors", "gorilla_rocket_motors",
		"gorilla_rocket_motors_", "gorilla_motors", "gorillarocketmotors")

	add(Canonical{"Hypertek", "Hypertek"},
		"h", "ht", "hyper", "hypertek", "hypertec")

	add(Canonical{"Kosdon by AeroTech", "KBA"},
		"k", "kba", "k-at", "kos", "kosdon", "kosdon/at",
		"kosdon/aerotech", "kosdon by aerotech")

	add(Canonical{"Kosdon TRM", "Kosdon"}, "kosdon trm")

	add(Canonical{"Loki Research", "Loki"},
		"loki", "lr", "ct", "loki research",
		"lr-ex", "loki ex", "loki research ex")

	add(Canonical{"Public Missiles, Ltd.", "PML"},
		"pm", "pml", "public missiles limited", "public missiles",
		"public missiles, ltd.", "public missiles ltd")

	add(Canonical{"Propulsion Polymers", "PP"},
		"pp", "prop", "propulsion", "propulsion polymers", "propulsion-polymers")

	add(Canonical{"Quest Aerospace", "Quest"},
		"q", "qu", "quest", "quest aerospace")

	add(Canonical{"R.A.T.T. Works", "RATT"},
		"ratt", "rt", "rtw", "ratt works", "r.a.t.t. works", "ratt_works", "rattworks")

	add(Canonical{"Roadrunner Rocketry", "Roadrunner"},
		"rr", "roadrunner", "roadrunner rocketry")

	add(Canonical{"Rocketvision Flight-Star", "RV"},
		"rv", "rocket vision", "rocketvision", "rocketvision flight-star")

	add(Canonical{"Sky Ripper Systems", "SkyR"},
		"sr", "srs", "skyr", "skyripper", "sky ripper",
		"skyripper systems", "sky ripper systems")

	add(Canonical{"West Coast Hybrids", "WCH"},
		"wch", "wcr", "west coast", "west coast hybrid", "west coast hybrids")

	// WECO / Sachsen Feuerwerk motors are certified under Klima.
	add(Canonical{"Raketenmodellbau Klima", "Klima"},
		"weco", "weco feuerwerk", "weco feuerwerks", "sf",
		"sachsen", "sachsen feuerwerk", "sachsen feuerwerks",
		"klima", "raketenmodellbau klima")

	add(Canonical{"Southern Cross Rocketry", "SCR"},
		"scr", "southern cross", "southern cross rocketry")

	add(Canonical{"LOC/Precision", "LOC"},
		"loc", "loc precision", "loc/precision")

	add(Canonical{"Piotr Tendera Rocket Motors", "TSP"},
		"tsp", "tendera", "piotr tendera", "piotr tendera rocket motors")

	add(Canonical{"AMW ProX", "AMW/ProX"},
		"amw/prox", "amw-prox", "amw_prox", "amw prox", "prox")

	add(Canonical{"Historical", "Hist"}, "hist", "historical")

	add(Canonical{"NoThrust", "NoThrust"}, "nothrust", "no thrust", "no-thrust")

	add(Canonical{"Derek Deville DEAP EX", "DEAP-EX"},
		"deap-ex", "deap ex", "deap", "derek deville", "derek deville deap ex")

	return m
}
