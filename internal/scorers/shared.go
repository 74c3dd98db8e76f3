package scorers

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/wardenproj/warden/internal/logger"
	"github.com/wardenproj/warden/internal/scoring"
)

var answerRegex = regexp.MustCompile(`(?i)answer:\s*(.+)`)

// Files scores tracked paths on bare existence. A present file is never
// scored regardless of the desired state.
func Files(eng *scoring.Engine, log *logger.Logger) {
	if len(eng.Resources.Files) == 0 {
		return
	}

	log.Debug("scoring files")

	for i := range eng.Resources.Files {
		file := &eng.Resources.Files[i]

		if _, err := os.Stat(file.Path); err == nil {
			log.Debug("file exists: " + file.Path)
			continue
		}

		message := fmt.Sprintf("%s was deleted.", file.Path)
		if file.Exist {
			eng.RemovePoints(&file.Item, message)
		} else {
			eng.AwardPoints(&file.Item, message)
		}
	}
}

// Questions scans each question file for an "answer:" line and awards
// when the captured answer matches the expected one, case-insensitively.
// A correct answer re-awards every cycle it remains in the file: the
// running score is rebuilt from zero each cycle, so this is the steady
// state for any satisfied check, not a one-time bonus.
func Questions(eng *scoring.Engine, log *logger.Logger) {
	if len(eng.Resources.ChallengeQuestions) == 0 {
		return
	}

	log.Debug("scoring challenge questions")

	for i := range eng.Resources.ChallengeQuestions {
		question := &eng.Resources.ChallengeQuestions[i]

		data, err := os.ReadFile(question.Path)
		if err != nil {
			log.Error(err, "could not read question file "+question.Path+", skipping it this cycle")
			continue
		}

		for _, match := range answerRegex.FindAllStringSubmatch(string(data), -1) {
			answer := strings.TrimSpace(match[1])
			if strings.EqualFold(answer, question.Answer) {
				eng.AwardPoints(&question.Item,
					fmt.Sprintf("Question '%s' was answered correctly.", question.Name))
				break
			}
		}
	}
}
