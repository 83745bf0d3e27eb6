package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	ptable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/streamalong/cli/internal/room"
	"github.com/streamalong/cli/internal/utils"
)

// ParticipantTable renders the room roster using lipgloss/table
type ParticipantTable struct {
	participants []room.Participant
	selfID       string
}

func NewParticipantTable(participants []room.Participant, selfID string) *ParticipantTable {
	return &ParticipantTable{participants: participants, selfID: selfID}
}

// View renders the table as a string
func (t *ParticipantTable) View() string {
	if len(t.participants) == 0 {
		return MutedStyle.Render("No participants")
	}

	headers := []string{"#", "Name", "Role", "Status"}

	var rows [][]string
	for i, p := range t.participants {
		name := utils.TruncateString(p.DisplayName, 30)
		if p.ID == t.selfID {
			name += " (you)"
		}

		status := "-"
		if p.Publishing {
			status = "streaming"
		}

		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1), name, string(p.Role), status,
		})
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(Primary)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return TableHeaderStyle
			case row%2 == 0:
				return TableRowStyle
			default:
				return TableRowAltStyle
			}
		})

	return tbl.Render()
}

// SessionSummary is printed after the session ends.
type SessionSummary struct {
	RoomID      string
	Role        string
	Duration    string
	PeakViewers int
	Messages    int
	Transcript  string
}

// RenderSessionSummary prints the end-of-session stats table.
func RenderSessionSummary(title string, summary SessionSummary) {
	fmt.Println()

	t := ptable.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(title)
	t.SetStyle(ptable.StyleRounded)
	t.Style().Title.Align = text.AlignCenter

	t.AppendRows([]ptable.Row{
		{"Room", summary.RoomID},
		{"Role", summary.Role},
		{"Duration", summary.Duration},
		{"Peak Viewers", summary.PeakViewers},
		{"Chat Messages", summary.Messages},
	})
	if summary.Transcript != "" {
		t.AppendRow(ptable.Row{"Transcript", summary.Transcript})
	}

	t.Render()
}

// RoomBanner is the share box shown when a room is created.
type RoomBanner struct {
	RoomID   string
	RoomLink string
}

func NewRoomBanner(roomID, roomLink string) *RoomBanner {
	return &RoomBanner{RoomID: roomID, RoomLink: roomLink}
}

func (r *RoomBanner) View() string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(Success).
		Padding(1, 2)

	content := fmt.Sprintf("%s Room Ready!\n\n%s Room ID:    %s\n%s Room Link:  %s",
		IconSuccess,
		IconCopy, BoldStyle.Foreground(Primary).Render(r.RoomID),
		IconWeb, MutedStyle.Render(r.RoomLink),
	)

	return boxStyle.Render(content)
}
