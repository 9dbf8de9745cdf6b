package model

// Level groups units by difficulty tier.
type Level struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ImagePath string `json:"image_path,omitempty"`
	OrderNum  int    `json:"order_num"`
}

// Unit belongs to a level and groups tests by topic.
type Unit struct {
	ID        string `json:"id"`
	LevelID   string `json:"level_id"`
	Name      string `json:"name"`
	ImagePath string `json:"image_path,omitempty"`
	OrderNum  int    `json:"order_num"`
}

// Test is a playable quiz inside a unit.
type Test struct {
	ID            string `json:"id"`
	UnitID        string `json:"unit_id"`
	Name          string `json:"name"`
	QuestionCount int    `json:"question_count"`
	PlayCount     int    `json:"play_count"`
}
