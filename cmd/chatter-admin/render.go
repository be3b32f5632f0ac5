package main

import (
	"io"
	"strconv"
	"time"

	"github.com/mikepea/chatter/pkg/chatter/models"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

const timeLayout = "2006-01-02 15:04:05"

// previewLength caps message content in the messages table.
const previewLength = 60

func newTable(out io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(out)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetTablePadding("\t")
	return table
}

func id(v uint) string { return strconv.FormatUint(uint64(v), 10) }

func stamp(t time.Time) string { return t.Local().Format(timeLayout) }

func renderUsers(out io.Writer, list []models.User) {
	table := newTable(out, "ID", "Username", "Created")
	table.AppendBulk(lo.Map(list, func(u models.User, _ int) []string {
		return []string{id(u.ID), u.Username, stamp(u.CreatedAt)}
	}))
	table.Render()
}

func renderGroups(out io.Writer, list []models.Group) {
	table := newTable(out, "ID", "Name", "Created By", "Created")
	table.AppendBulk(lo.Map(list, func(g models.Group, _ int) []string {
		return []string{id(g.ID), g.Name, id(g.CreatedBy), stamp(g.CreatedAt)}
	}))
	table.Render()
}

func renderMembers(out io.Writer, list []models.Member) {
	table := newTable(out, "ID", "Username", "Joined")
	table.AppendBulk(lo.Map(list, func(m models.Member, _ int) []string {
		return []string{id(m.ID), m.Username, stamp(m.JoinedAt)}
	}))
	table.Render()
}

func renderMessages(out io.Writer, list []models.AuthoredMessage) {
	table := newTable(out, "ID", "Author", "Sent", "Content")
	table.AppendBulk(lo.Map(list, func(m models.AuthoredMessage, _ int) []string {
		return []string{id(m.ID), m.Username, stamp(m.CreatedAt), preview(m.Content)}
	}))
	table.Render()
}

func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewLength {
		return content
	}
	return string(runes[:previewLength-3]) + "..."
}
