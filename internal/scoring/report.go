package scoring

import (
	_ "embed"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

//go:embed report_template.html
var reportTemplate string

const reportFileName = "scoring_report.html"

// DefaultReportPath returns the report artifact location on the
// trainee's desktop.
func DefaultReportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Desktop", reportFileName), nil
}

// RenderReport rewrites the named regions of the HTML report in place,
// leaving unrelated markup untouched. A missing report file triggers a
// one-shot recovery from the bundled template; a second failure is
// logged and abandoned for this cycle.
func (e *Engine) RenderReport(now time.Time) {
	e.renderReport(now, false)
}

func (e *Engine) renderReport(now time.Time, retry bool) {
	e.log.Debug("attempting to generate scoring report")

	content, err := os.ReadFile(e.reportPath)
	if err != nil {
		if retry {
			e.log.Critical(err, "could not open scoring report after retry")
			return
		}
		e.log.Warn("scoring report missing, restoring from bundled template")
		if writeErr := os.WriteFile(e.reportPath, []byte(reportTemplate), 0o644); writeErr != nil {
			e.log.Error(writeErr, "could not restore scoring report template")
		}
		e.renderReport(now, true)
		return
	}

	doc := string(content)
	doc = rewriteElement(doc, "p", "score",
		html.EscapeString(fmt.Sprintf("Score: %d/%d", e.CurrentScore, e.TotalScore)))
	doc = rewriteElement(doc, "ul", "scoring_messages", scoringList(e.ScoringMessages))
	doc = rewriteElement(doc, "ul", "configuration_messages", errorList(e.ConfigMessages))
	doc = rewriteElement(doc, "ul", "generator_messages", errorList(e.GeneratorMessages))
	doc = rewriteElement(doc, "p", "timestamp",
		html.EscapeString("Last scored: "+now.Format("15:04:05")))

	if err := os.WriteFile(e.reportPath, []byte(doc), 0o644); err != nil {
		if retry {
			e.log.Critical(err, "could not write scoring report after retry")
			return
		}
		e.log.Error(err, "could not write scoring report, retrying once")
		e.renderReport(now, true)
	}
}

// scoringList renders scoring messages as list entries, styling
// negative-score entries red.
func scoringList(messages []string) string {
	var b strings.Builder
	for _, message := range messages {
		if strings.HasPrefix(message, "[-") {
			b.WriteString(`<li style="color: red;">`)
		} else {
			b.WriteString("<li>")
		}
		b.WriteString(html.EscapeString(message))
		b.WriteString("</li>")
	}
	return b.String()
}

func errorList(messages []string) string {
	var b strings.Builder
	for _, message := range messages {
		b.WriteString(`<li style="color: red;">`)
		b.WriteString(html.EscapeString(message))
		b.WriteString("</li>")
	}
	return b.String()
}

// rewriteElement replaces the inner content of the first <tag id="id">
// element. Matching on the concrete tag keeps the lazy match from
// stopping at nested closing tags of other kinds.
func rewriteElement(doc, tag, id, inner string) string {
	pattern := `(?s)(<` + tag + `[^>]*\bid="` + regexp.QuoteMeta(id) + `"[^>]*>).*?(</` + tag + `>)`
	re := regexp.MustCompile(pattern)

	loc := re.FindStringSubmatchIndex(doc)
	if loc == nil {
		return doc
	}

	openEnd := loc[3]
	closeStart := loc[4]
	return doc[:openEnd] + inner + doc[closeStart:]
}
