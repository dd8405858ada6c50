package levels

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/entropy-reduction/internal/games/entropy/core"
)

// YAMLLevel is the on-disk structure of a level file.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	GridSize int               `yaml:"grid_size,omitempty"`
	Goal     YAMLGoal          `yaml:"goal"`
	Stars    *YAMLStars        `yaml:"stars,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLGoal is the win condition block.
type YAMLGoal struct {
	Type      string  `yaml:"type"`
	Amount    int     `yaml:"amount,omitempty"`
	Seconds   float64 `yaml:"seconds,omitempty"`
	Threshold float64 `yaml:"threshold,omitempty"`
}

// YAMLStars is the star grading block.
type YAMLStars struct {
	Metric     string    `yaml:"metric"`
	Thresholds []float64 `yaml:"thresholds"`
}

// ParseYAML parses and validates a level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if yl.ID == "" {
		return Level{}, fmt.Errorf("level has no id")
	}

	gridSize := yl.GridSize
	if gridSize <= 0 {
		gridSize = core.DefaultGridSize
	}

	goal := Goal{
		Type:      GoalType(yl.Goal.Type),
		Amount:    yl.Goal.Amount,
		Seconds:   yl.Goal.Seconds,
		Threshold: yl.Goal.Threshold,
	}
	if err := validateGoal(goal); err != nil {
		return Level{}, fmt.Errorf("level %s: %w", yl.ID, err)
	}

	stars, err := parseStars(yl.Stars)
	if err != nil {
		return Level{}, fmt.Errorf("level %s: %w", yl.ID, err)
	}

	return Level{
		ID:       yl.ID,
		Name:     yl.Name,
		GridSize: gridSize,
		Goal:     goal,
		Stars:    stars,
		Metadata: yl.Metadata,
	}, nil
}

// parseStars validates the optional star block. A missing block means
// every completion is worth one star.
func parseStars(ys *YAMLStars) (StarThresholds, error) {
	if ys == nil {
		return StarThresholds{}, nil
	}

	metric := StarMetric(ys.Metric)
	switch metric {
	case StarsByScore, StarsByTime, StarsByTiles:
	default:
		return StarThresholds{}, fmt.Errorf("unknown star metric %q", ys.Metric)
	}

	if len(ys.Thresholds) != 3 {
		return StarThresholds{}, fmt.Errorf("stars require exactly 3 thresholds, got %d", len(ys.Thresholds))
	}

	st := StarThresholds{Metric: metric}
	copy(st.Thresholds[:], ys.Thresholds)
	return st, nil
}

// FormatExtensions returns supported level file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
