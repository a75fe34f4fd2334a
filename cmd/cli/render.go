package main

import (
	"fmt"
	"strings"

	"github.com/ApexArbiter/SmitFinalHachkthon/internal/catalog"
	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/models"
)

func (sh *shell) prompt() string {
	if sh.session == nil {
		return fmt.Sprintf("%s%s signed out %s\n%s>%s ", BgDkGray, White, Reset, Cyan, Reset)
	}

	crit := sh.screen.Criteria()
	filter := "all"
	if crit.Category != "" {
		filter = crit.Category
	}
	if q := strings.TrimSpace(crit.Query); q != "" {
		filter += fmt.Sprintf(" | %q", q)
	}

	barBg := BgGreen
	if sh.screen.Loading() {
		barBg = BgYellow
	}
	return fmt.Sprintf("%s%s %s | %s %s\n%s>%s ", barBg, Black, sh.session.User.Email, filter, Reset, Cyan, Reset)
}

func (sh *shell) printEvents() {
	visible := sh.screen.Visible()
	total := len(sh.screen.Events())

	if len(visible) == 0 {
		fmt.Fprintf(sh.out, "  %sno events%s\n", Dim, Reset)
		return
	}

	fmt.Fprintf(sh.out, "  %s%-4s %-28s %-8s %8s  %-18s %s%s\n", Dim, "#", "TITLE", "CATEGORY", "PRICE", "DATE", "LOCATION", Reset)
	for i, ev := range visible {
		fmt.Fprintf(sh.out, "  %-4d %-28s %s%-8s%s %8s  %-18s %s\n",
			i+1, truncate(ev.Title, 28), Cyan, ev.Category, Reset, formatPrice(ev.Price), truncate(ev.Date, 18), ev.Location)
	}
	if len(visible) != total {
		fmt.Fprintf(sh.out, "  %s%d of %d shown%s\n", Dim, len(visible), total, Reset)
	}
}

func (sh *shell) printEvent(ev models.Event) {
	fmt.Fprintf(sh.out, "  %s%s%s%s\n", Bold, White, ev.Title, Reset)
	fmt.Fprintf(sh.out, "  %s%s%s  %s  %s\n", Cyan, ev.Category, Reset, formatPrice(ev.Price), ev.Date)
	if ev.Location != "" {
		fmt.Fprintf(sh.out, "  @ %s\n", ev.Location)
	}
	if ev.Description != "" {
		fmt.Fprintf(sh.out, "\n  %s\n", ev.Description)
	}
	if ev.Image != "" {
		fmt.Fprintf(sh.out, "  %s%s%s\n", Dim, ev.Image, Reset)
	}
	fmt.Fprintf(sh.out, "  %sid %s%s\n", Dim, ev.ID, Reset)
}

func (sh *shell) printCategories() {
	active := sh.screen.Criteria().Category
	for _, c := range catalog.Categories {
		marker := " "
		color := Reset
		if c.Name == active {
			marker = "*"
			color = Green
		}
		fmt.Fprintf(sh.out, "  %s%s %s %s%s\n", color, marker, c.ID, c.Name, Reset)
	}
	fmt.Fprintf(sh.out, "  %spick the active one again to clear%s\n", Dim, Reset)
}

func (sh *shell) printHelp() {
	fmt.Fprintln(sh.out)
	fmt.Fprintf(sh.out, "  %s%sCommands%s\n", Bold, White, Reset)
	fmt.Fprintf(sh.out, "  %s--- Account ---%s\n", Dim, Reset)
	fmt.Fprintf(sh.out, "  %sregister%s <email> <password> <name>\n", Green, Reset)
	fmt.Fprintf(sh.out, "  %slogin%s    <email> <password>\n", Green, Reset)
	fmt.Fprintf(sh.out, "  %slogout%s\n", Green, Reset)
	fmt.Fprintln(sh.out)
	fmt.Fprintf(sh.out, "  %s--- Events ---%s\n", Dim, Reset)
	fmt.Fprintf(sh.out, "  %srefresh%s  r    reload from the api\n", Green, Reset)
	fmt.Fprintf(sh.out, "  %slist%s     ls   show the current list\n", Green, Reset)
	fmt.Fprintf(sh.out, "  %scat%s      c    [name|number] pick or clear a category\n", Green, Reset)
	fmt.Fprintf(sh.out, "  %ssearch%s   /    [text] remember search text, blank clears\n", Green, Reset)
	fmt.Fprintf(sh.out, "  %sshow%s     s    <number|id> event details\n", Green, Reset)
	fmt.Fprintf(sh.out, "  %snew%s           <title> | <category> [| price | date | location]\n", Green, Reset)
	fmt.Fprintln(sh.out)
	fmt.Fprintf(sh.out, "  %shealth%s   h    api health\n", Green, Reset)
	fmt.Fprintf(sh.out, "  %sclear%s         clear screen\n", Green, Reset)
	fmt.Fprintf(sh.out, "  %sexit%s          quit\n", Green, Reset)
}

func (sh *shell) ok(format string, args ...any) {
	fmt.Fprintf(sh.out, "  %s[ok]%s %s\n", Green, Reset, fmt.Sprintf(format, args...))
}

func (sh *shell) fail(format string, args ...any) {
	fmt.Fprintf(sh.out, "  %s[x] %s%s\n", Red, fmt.Sprintf(format, args...), Reset)
}

func (sh *shell) usage(text string) {
	fmt.Fprintf(sh.out, "  %sUsage: %s%s\n", Red, text, Reset)
}

func formatPrice(p float64) string {
	if p == 0 {
		return "free"
	}
	return fmt.Sprintf("%.2f", p)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "~"
}
