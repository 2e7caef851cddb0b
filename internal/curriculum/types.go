package curriculum

// Skill is one of the five competency axes a week contributes points toward.
type Skill string

const (
	SkillMath     Skill = "math"
	SkillStats    Skill = "stats"
	SkillCoding   Skill = "coding"
	SkillMarket   Skill = "market"
	SkillStrategy Skill = "strategy"
)

// Axes returns all skills in radar display order.
func Axes() []Skill {
	return []Skill{
		SkillMath,
		SkillStats,
		SkillCoding,
		SkillMarket,
		SkillStrategy,
	}
}

// DisplayName returns a human-readable name for a skill.
func (s Skill) DisplayName() string {
	switch s {
	case SkillMath:
		return "Mathematics"
	case SkillStats:
		return "Statistics"
	case SkillCoding:
		return "Coding"
	case SkillMarket:
		return "Microstructure"
	case SkillStrategy:
		return "Strategy"
	default:
		return string(s)
	}
}

// Valid reports whether s is one of the five axes.
func (s Skill) Valid() bool {
	for _, a := range Axes() {
		if a == s {
			return true
		}
	}
	return false
}

// Block is one of the three fixed daily time segments.
type Block string

const (
	BlockMorning   Block = "morning"
	BlockAfternoon Block = "afternoon"
	BlockNight     Block = "night"
)

// Blocks returns the daily blocks in chronological order.
func Blocks() []Block {
	return []Block{BlockMorning, BlockAfternoon, BlockNight}
}

// ParseBlock converts a string to a Block.
func ParseBlock(s string) (Block, bool) {
	switch Block(s) {
	case BlockMorning, BlockAfternoon, BlockNight:
		return Block(s), true
	}
	return "", false
}

// DisplayName returns the block name for headers.
func (b Block) DisplayName() string {
	switch b {
	case BlockMorning:
		return "Morning"
	case BlockAfternoon:
		return "Afternoon"
	case BlockNight:
		return "Night"
	default:
		return string(b)
	}
}

// Phase groups consecutive weeks under a theme.
type Phase struct {
	ID    string
	Title string
}

// Week is a single roadmap week.
type Week struct {
	ID       int
	Phase    string
	Title    string
	Summary  string
	Concepts []string
	Skills   map[Skill]int
	Days     []DailyTask
}

// TimeBlock is the topic and ordered task list of one daily block.
type TimeBlock struct {
	Topic string
	Tasks []string
}

// DailyTask is the plan for a single study day.
type DailyTask struct {
	ID        string
	Title     string
	Morning   TimeBlock
	Afternoon TimeBlock
	Night     TimeBlock
	Focus     string
}

// Block returns the time block for b.
func (d DailyTask) Block(b Block) TimeBlock {
	switch b {
	case BlockMorning:
		return d.Morning
	case BlockAfternoon:
		return d.Afternoon
	default:
		return d.Night
	}
}

// Tasks returns every task label of the day in block order.
func (d DailyTask) Tasks() []string {
	var out []string
	for _, b := range Blocks() {
		out = append(out, d.Block(b).Tasks...)
	}
	return out
}
