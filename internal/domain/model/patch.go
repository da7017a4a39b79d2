package model

// HackathonPatch carries a partial update. Nil fields are left untouched.
type HackathonPatch struct {
	Title           *string   `json:"title,omitempty"`
	Description     *string   `json:"description,omitempty"`
	FullDescription *string   `json:"full_description,omitempty"`
	Organizer       *string   `json:"organizer,omitempty"`
	Prize           *string   `json:"prize,omitempty"`
	Eligibility     *string   `json:"eligibility,omitempty"`
	StartDate       *string   `json:"start_date,omitempty"`
	EndDate         *string   `json:"end_date,omitempty"`
	Domain          *string   `json:"domain,omitempty"`
	Level           *Level    `json:"level,omitempty"`
	Mode            *Mode     `json:"mode,omitempty"`
	Status          *Status   `json:"status,omitempty"`
	DaysLeft        *int      `json:"days_left,omitempty"`
	Participants    *int      `json:"participants,omitempty"`
	TeamSize        *TeamSize `json:"team_size,omitempty"`
	TechStack       []string  `json:"tech_stack,omitempty"`
}

// Apply returns h with every non-nil patch field merged in. The ID never changes.
func (p HackathonPatch) Apply(h Hackathon) Hackathon {
	out := h.Clone()
	setString(&out.Title, p.Title)
	setString(&out.Description, p.Description)
	setString(&out.FullDescription, p.FullDescription)
	setString(&out.Organizer, p.Organizer)
	setString(&out.Prize, p.Prize)
	setString(&out.Eligibility, p.Eligibility)
	setString(&out.StartDate, p.StartDate)
	setString(&out.EndDate, p.EndDate)
	setString(&out.Domain, p.Domain)
	if p.Level != nil {
		out.Level = *p.Level
	}
	if p.Mode != nil {
		out.Mode = *p.Mode
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.DaysLeft != nil {
		out.DaysLeft = *p.DaysLeft
	}
	if p.Participants != nil {
		out.Participants = *p.Participants
	}
	if p.TeamSize != nil {
		out.TeamSize = *p.TeamSize
	}
	if p.TechStack != nil {
		out.TechStack = CleanTags(p.TechStack)
	}
	return out
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
