package source

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"clwrapped/internal/model"
)

// TodoStats summarizes the todos directory.
type TodoStats struct {
	TotalFiles       int
	TotalCreated     int
	TotalCompleted   int
	TotalInProgress  int
	TotalPending     int
	OrphanAgentTodos int
}

// ScanTodos reads every todos/*.json file under the claude dir. Each file is
// a JSON array of task objects; unreadable or malformed files contribute
// nothing. Agent todo files (those with "-agent-" in the name) that finished
// zero items are counted as orphaned, including empty lists.
func ScanTodos(claudeDir string) TodoStats {
	var stats TodoStats

	pattern := filepath.Join(claudeDir, "todos", "*.json")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return stats
	}

	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var todos []model.TodoItem
		if err := json.Unmarshal(data, &todos); err != nil {
			continue
		}

		stats.TotalFiles++
		completed := 0
		for _, todo := range todos {
			stats.TotalCreated++
			switch todo.Status {
			case "completed":
				stats.TotalCompleted++
				completed++
			case "in_progress":
				stats.TotalInProgress++
			default:
				stats.TotalPending++
			}
		}

		if strings.Contains(filepath.Base(path), "-agent-") && completed == 0 {
			stats.OrphanAgentTodos++
		}
	}

	return stats
}
