package schedule

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var weekdayLabels = [...]string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}

const (
	emptyReportMessage = "🎯 На ближайшие две недели свободных слотов не найдено."
	reportFooter       = "📝 В будни показываются только вечерние слоты."
)

// Formatter renders a scan result into a sequence of text blocks, each at
// most maxBlockLength characters, ready for a message-size-limited transport.
type Formatter struct {
	maxBlockLength int
	printer        *message.Printer
}

func NewFormatter(maxBlockLength int) *Formatter {
	return &Formatter{
		maxBlockLength: maxBlockLength,
		// Russian locale groups thousands with a thin space: "1 500 руб."
		printer: message.NewPrinter(language.Russian),
	}
}

// Run produces the report blocks. Block 1 always carries the header and
// summary; venues with zero admitted slots are omitted from the body.
func (f *Formatter) Run(reports []VenueReport) []string {
	paragraphs := make([]string, 0, len(reports)+2)
	total := 0

	for _, report := range reports {
		if report.Count == 0 {
			continue
		}
		total += report.Count
		paragraphs = append(paragraphs, f.venueParagraph(report))
	}

	if total == 0 {
		return []string{emptyReportMessage}
	}

	header := f.printer.Sprintf("⚽ СВОБОДНЫЕ СЛОТЫ\n\nНайдено слотов: %d", total)

	blocks := make([]string, 0, len(paragraphs)+2)
	blocks = append(blocks, header)
	blocks = append(blocks, paragraphs...)
	blocks = append(blocks, reportFooter)

	return f.paginate(blocks)
}

// venueParagraph renders one venue: a date header once per date change (the
// slots arrive already sorted from the pipeline) and one line per slot.
func (f *Formatter) venueParagraph(report VenueReport) string {
	var b strings.Builder

	b.WriteString("🏟️ " + report.Name + "\n")

	currentDate := ""
	for _, slot := range report.Slots {
		if slot.Date != currentDate {
			currentDate = slot.Date
			b.WriteString("\n📅 " + slot.Start.Format("02.01.2006") +
				" (" + weekdayLabels[slot.Weekday] + "):\n")
		}

		line := "• " + slot.Start.Format("15:04") + "-" + slot.End.Format("15:04") +
			" - " + f.printer.Sprintf("%d руб.", slot.Price)
		if slot.Room != "" {
			line += " (" + slot.Room + ")"
		}
		b.WriteString(line + "\n")
	}

	b.WriteString(f.printer.Sprintf("\nВсего: %d слотов", report.Count))

	return b.String()
}

// paginate packs paragraphs into blocks without exceeding the limit. Whole
// paragraphs are kept together when possible; an oversize paragraph splits
// at line boundaries, an oversize line at word boundaries, never mid-word.
func (f *Formatter) paginate(paragraphs []string) []string {
	var blocks []string
	current := ""

	flush := func() {
		if current != "" {
			blocks = append(blocks, current)
			current = ""
		}
	}

	for _, paragraph := range paragraphs {
		for _, chunk := range f.splitParagraph(paragraph) {
			switch {
			case current == "":
				current = chunk
			case utf8.RuneCountInString(current)+2+utf8.RuneCountInString(chunk) <= f.maxBlockLength:
				current += "\n\n" + chunk
			default:
				flush()
				current = chunk
			}
		}
	}

	flush()
	return blocks
}

func (f *Formatter) splitParagraph(paragraph string) []string {
	if utf8.RuneCountInString(paragraph) <= f.maxBlockLength {
		return []string{paragraph}
	}

	var chunks []string
	current := ""
	started := false

	for _, line := range strings.Split(paragraph, "\n") {
		for _, piece := range f.splitLine(line) {
			switch {
			case !started:
				current = piece
				started = true
			case utf8.RuneCountInString(current)+1+utf8.RuneCountInString(piece) <= f.maxBlockLength:
				current += "\n" + piece
			default:
				chunks = append(chunks, current)
				current = piece
			}
		}
	}

	if started && current != "" {
		chunks = append(chunks, current)
	}
	return chunks
}

func (f *Formatter) splitLine(line string) []string {
	if utf8.RuneCountInString(line) <= f.maxBlockLength {
		return []string{line}
	}

	var pieces []string
	current := ""

	for _, word := range strings.Fields(line) {
		switch {
		case current == "":
			current = word
		case utf8.RuneCountInString(current)+1+utf8.RuneCountInString(word) <= f.maxBlockLength:
			current += " " + word
		default:
			pieces = append(pieces, current)
			current = word
		}
	}

	if current != "" {
		pieces = append(pieces, current)
	}
	return pieces
}
