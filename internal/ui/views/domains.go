package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"drr/internal/domain"
	"drr/internal/table"
)

type column struct {
	field table.Field
	title string
	width int
}

var domainColumns = []column{
	{table.FieldName, "Name", 30},
	{table.FieldType, "Type", 7},
	{table.FieldIssuer, "Issuer", 18},
	{table.FieldRenewDate, "Renews", 11},
	{table.FieldDaysUntilExpiry, "Left", 9},
	{table.FieldCreatedAt, "Added", 11},
	{table.FieldNotBefore, "Valid from", 11},
}

func (r *Renderer) renderDomains(s ViewState) string {
	var b strings.Builder

	summary := fmt.Sprintf("%d records", s.Page.TotalRows)
	if len([]rune(s.TableView.Query)) >= table.MinFilterLength {
		summary += " " + r.styles.Filter.Render(fmt.Sprintf("[Filter: %s]", s.TableView.Query))
	}
	summary += r.styles.Dim.Render(fmt.Sprintf("  page %d/%d  size %s", s.Page.Page+1, s.Page.TotalPages, s.TableView.PageSize))
	b.WriteString(summary)
	b.WriteString("\n\n")

	headers := make([]string, 0, len(domainColumns))
	for i, c := range domainColumns {
		title := fmt.Sprintf("%d %s", i+1, c.title)
		if s.TableView.Sort.Field == c.field {
			if s.TableView.Sort.Direction == table.Descending {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}
		headers = append(headers, pad(title, c.width))
	}
	b.WriteString("  " + r.styles.Header.Render(strings.Join(headers, " ")))
	b.WriteString("\n")

	if len(s.Records) == 0 {
		b.WriteString(r.styles.Dim.Render("  No domains or certificates yet."))
		return b.String()
	}

	height := s.Height - 14
	start, end := viewport(len(s.Records), s.RecordIndex, height)
	if start > 0 {
		b.WriteString(r.styles.Scroll.Render(fmt.Sprintf("  ↑ %d more above ↑", start)))
		b.WriteString("\n")
	}
	for i := start; i < end; i++ {
		b.WriteString(r.renderRecordRow(s.Records[i], i == s.RecordIndex, s.Now))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if end < len(s.Records) {
		b.WriteString("\n")
		b.WriteString(r.styles.Scroll.Render(fmt.Sprintf("  ↓ %d more below ↓", len(s.Records)-end)))
	}
	return b.String()
}

func (r *Renderer) renderRecordRow(rec domain.Record, selected bool, now time.Time) string {
	days := table.DaysUntilExpiry(rec.RenewDate.Time, now)
	tier := table.ExpiryStatus(days)

	cells := make([]string, 0, len(domainColumns))
	for _, c := range domainColumns {
		cells = append(cells, pad(cellText(rec, c.field, days), c.width))
	}
	line := strings.Join(cells, " ")

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(TierColor(tier)))
	if selected {
		return r.styles.Highlight.Render("▶ ") + style.Inherit(r.styles.HighlightBg).Render(line)
	}
	return "  " + style.Render(line)
}

func cellText(rec domain.Record, f table.Field, days int) string {
	switch f {
	case table.FieldName:
		return rec.Name
	case table.FieldType:
		return string(rec.Type)
	case table.FieldIssuer:
		return rec.Issuer
	case table.FieldRenewDate:
		return rec.RenewDate.String()
	case table.FieldDaysUntilExpiry:
		if rec.RenewDate.IsZero() {
			return ""
		}
		return table.ExpiryLabel(days)
	case table.FieldCreatedAt:
		return formatDay(rec.CreatedAt.Time)
	case table.FieldNotBefore:
		if rec.NotBefore == nil {
			return ""
		}
		return formatDay(rec.NotBefore.Time)
	}
	return ""
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// RecordDetails renders everything known about a record for the pager
func RecordDetails(rec domain.Record, now time.Time) string {
	days := table.DaysUntilExpiry(rec.RenewDate.Time, now)
	tier := table.ExpiryStatus(days)
	tierStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(TierColor(tier)))
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).Render(rec.Name))
	b.WriteString("\n\n")
	row := func(k, v string) {
		if v == "" {
			v = "-"
		}
		b.WriteString(fmt.Sprintf("%s %s\n", label.Render(pad(k, 14)), v))
	}
	row("Type", string(rec.Type))
	row("Issuer", rec.Issuer)
	row("Issuer link", rec.IssuerLink)
	row("Renews", rec.RenewDate.String())
	row("Status", tierStyle.Render(fmt.Sprintf("%s (%s)", tier, table.ExpiryLabel(days))))
	if rec.NotBefore != nil {
		row("Valid from", rec.NotBefore.Format(time.RFC1123))
	}
	row("Added", formatStamp(rec.CreatedAt.Time))
	row("Last checked", formatStamp(rec.UpdatedAt.Time))
	row("ID", fmt.Sprint(rec.ID))
	return b.String()
}

func formatStamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC1123)
}
