package repository

import "github.com/okian/hackstack/internal/domain/model"

// DemoHackathons returns the catalog a fresh server starts with when demo
// seeding is enabled. Each call returns a new slice.
func DemoHackathons() []model.Hackathon {
	return []model.Hackathon{
		{
			ID:           "ai-frontier-2026",
			Title:        "AI Frontier Challenge",
			Description:  "Build assistants that help people learn faster.",
			Organizer:    "OpenMind Labs",
			Prize:        "$25,000",
			StartDate:    "2026-11-07",
			EndDate:      "2026-11-09",
			Domain:       "AI",
			Level:        model.LevelIntermediate,
			Mode:         model.ModeOnline,
			Status:       model.StatusOpen,
			DaysLeft:     21,
			Participants: 1240,
			TeamSize:     model.TeamSize{Min: 1, Max: 4},
			TechStack:    []string{"Python", "PyTorch", "LangChain"},
		},
		{
			ID:           "web-weekend-sprint",
			Title:        "Web Weekend Sprint",
			Description:  "Ship an accessible web app in 48 hours.",
			Organizer:    "Frontend Guild",
			Prize:        "$5,000",
			StartDate:    "2026-10-24",
			EndDate:      "2026-10-26",
			Domain:       "Web",
			Level:        model.LevelBeginner,
			Mode:         model.ModeHybrid,
			Status:       model.StatusClosingSoon,
			DaysLeft:     5,
			Participants: 430,
			TeamSize:     model.TeamSize{Min: 1, Max: 5},
			TechStack:    []string{"React", "TypeScript", "Go"},
		},
		{
			ID:           "chain-builders",
			Title:        "Chain Builders Cup",
			Description:  "Smart contracts for transparent public funding.",
			Organizer:    "Ledger Foundation",
			Prize:        "$40,000",
			StartDate:    "2026-12-01",
			EndDate:      "2026-12-05",
			Domain:       "Blockchain",
			Level:        model.LevelAdvanced,
			Mode:         model.ModeInPerson,
			Status:       model.StatusOpen,
			DaysLeft:     45,
			Participants: 310,
			TeamSize:     model.TeamSize{Min: 2, Max: 4},
			TechStack:    []string{"Solidity", "Rust"},
		},
		{
			ID:           "mobile-for-good",
			Title:        "Mobile for Good",
			Description:  "Apps that connect volunteers with local causes.",
			Organizer:    "CivicTech Collective",
			Prize:        "$10,000",
			StartDate:    "2026-11-14",
			EndDate:      "2026-11-16",
			Domain:       "Mobile",
			Level:        model.LevelAll,
			Mode:         model.ModeOnline,
			Status:       model.StatusOpen,
			DaysLeft:     28,
			Participants: 780,
			TeamSize:     model.TeamSize{Min: 1, Max: 5},
			TechStack:    []string{"Kotlin", "Swift", "Flutter"},
		},
		{
			ID:           "cloud-native-jam",
			Title:        "Cloud Native Jam",
			Description:  "Make deployments boring with better tooling.",
			Organizer:    "Kube Community",
			Prize:        "$15,000",
			StartDate:    "2027-01-10",
			EndDate:      "2027-01-12",
			Domain:       "Cloud",
			Level:        model.LevelIntermediate,
			Mode:         model.ModeHybrid,
			Status:       model.StatusOpen,
			DaysLeft:     85,
			Participants: 560,
			TeamSize:     model.TeamSize{Min: 1, Max: 4},
			TechStack:    []string{"Go", "Kubernetes", "Terraform"},
		},
		{
			ID:           "iot-smart-campus",
			Title:        "Smart Campus IoT Hack",
			Description:  "Sensors and dashboards for greener buildings.",
			Organizer:    "Tech University",
			Prize:        "$3,000",
			StartDate:    "2026-10-19",
			EndDate:      "2026-10-20",
			Domain:       "IoT",
			Level:        model.LevelBeginner,
			Mode:         model.ModeInPerson,
			Status:       model.StatusClosingSoon,
			DaysLeft:     2,
			Participants: 95,
			TeamSize:     model.TeamSize{Min: 2, Max: 6},
			TechStack:    []string{"Arduino", "MQTT", "Python"},
		},
		{
			ID:           "data-for-cities",
			Title:        "Data for Cities",
			Description:  "Open data stories that improve urban transit.",
			Organizer:    "Metro Analytics",
			Prize:        "$8,000",
			StartDate:    "2026-11-21",
			EndDate:      "2026-11-23",
			Domain:       "Data Science",
			Level:        model.LevelIntermediate,
			Mode:         model.ModeOnline,
			Status:       model.StatusOpen,
			DaysLeft:     35,
			Participants: 640,
			TeamSize:     model.TeamSize{Min: 1, Max: 3},
			TechStack:    []string{"Python", "Pandas", "SQL"},
		},
		{
			ID:           "indie-game-jam",
			Title:        "Indie Game Jam",
			Description:  "Solo game development around a secret theme.",
			Organizer:    "Pixel Forge",
			Prize:        "$2,000",
			StartDate:    "2026-09-12",
			EndDate:      "2026-09-14",
			Domain:       "Gaming",
			Level:        model.LevelAll,
			Mode:         model.ModeOnline,
			Status:       model.StatusEnded,
			DaysLeft:     0,
			Participants: 1520,
			TeamSize:     model.TeamSize{Min: 1, Max: 1},
			TechStack:    []string{"Godot", "Unity"},
		},
		{
			ID:           "secure-ai-summit",
			Title:        "Secure AI Summit Hack",
			Description:  "Red-team and harden machine learning systems.",
			Organizer:    "OpenMind Labs",
			Prize:        "$30,000",
			StartDate:    "2026-08-01",
			EndDate:      "2026-08-03",
			Domain:       "AI",
			Level:        model.LevelAdvanced,
			Mode:         model.ModeInPerson,
			Status:       model.StatusEnded,
			DaysLeft:     0,
			Participants: 270,
			TeamSize:     model.TeamSize{Min: 2, Max: 5},
			TechStack:    []string{"Python", "TensorFlow"},
		},
		{
			ID:           "green-web-challenge",
			Title:        "Green Web Challenge",
			Description:  "Cut page weight and energy use for real sites.",
			Organizer:    "Sustainable Web Alliance",
			Prize:        "$6,000",
			StartDate:    "2026-12-15",
			EndDate:      "2026-12-17",
			Domain:       "Web",
			Level:        model.LevelIntermediate,
			Mode:         model.ModeOnline,
			Status:       model.StatusOpen,
			DaysLeft:     62,
			Participants: 205,
			TeamSize:     model.TeamSize{Min: 1, Max: 4},
			TechStack:    []string{"HTML", "CSS", "Svelte"},
		},
	}
}
