package bot

import (
	"context"
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/olekukonko/tablewriter"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/examdesk/internal/models"
)

const (
	userHelp = `Available commands:
/stats [from] [to] - Dashboard numbers, optionally by closing date
/find <serial> - Look up an exam by serial number
/order <order number> - Look up an exam by order number
/open - Table of open exams
/help - Show this message`

	adminHelp = userHelp + `

Admin commands:
/seturl <url> - Set the Apps Script web app URL
/ping - Test the connection to the script`

	openTableLimit = 30
)

type commandHandler func(context.Context, *tgbotapi.Message) error

func (b *Bot) routeUserCommands(cmd string) (commandHandler, bool) {
	commands := map[string]commandHandler{
		"start": b.handleStart,
		"help":  b.handleHelp,
		"stats": b.handleStats,
		"find":  b.handleFind,
		"order": b.handleOrder,
		"open":  b.handleOpen,
	}
	handler, found := commands[cmd]
	return handler, found
}

func (b *Bot) routeAdminCommands(cmd string) (commandHandler, bool) {
	commands := map[string]commandHandler{
		"seturl": b.handleSetURL,
		"ping":   b.handlePing,
	}
	handler, found := commands[cmd]
	return handler, found
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if !msg.IsCommand() {
		b.sendHelp(msg.Chat.ID)
		return
	}

	cmd := msg.Command()

	if handler, ok := b.routeUserCommands(cmd); ok {
		b.run(ctx, handler, msg)
		return
	}

	if b.isAdmin(msg) {
		if handler, ok := b.routeAdminCommands(cmd); ok {
			b.run(ctx, handler, msg)
			return
		}
	}

	b.sendHelp(msg.Chat.ID)
}

func (b *Bot) run(ctx context.Context, handler commandHandler, msg *tgbotapi.Message) {
	if err := handler(ctx, msg); err != nil {
		logger.Error.Printf("Command error: %v", err)
		b.sendMessage(msg.Chat.ID, fmt.Sprintf("Error: %v", err))
	}
}

func (b *Bot) isAdmin(msg *tgbotapi.Message) bool {
	return msg.From != nil && b.admins[msg.From.ID]
}

func (b *Bot) handleHelp(ctx context.Context, msg *tgbotapi.Message) error {
	text := userHelp
	if b.isAdmin(msg) {
		text = adminHelp
	}
	return b.sendMessage(msg.Chat.ID, text)
}

func (b *Bot) sendHelp(chatID int64) error {
	return b.sendMessage(chatID, "Use commands to talk to the bot. Send /help for the list.")
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) error {
	text := "Hi! I can look up exams and show the dashboard.\n\n"
	if b.isAdmin(msg) {
		text += "You are an admin. Use /help for the list of commands."
	} else {
		text += "Try /stats or /find <serial>."
	}
	return b.sendMessage(msg.Chat.ID, text)
}

func (b *Bot) handleStats(ctx context.Context, msg *tgbotapi.Message) error {
	args := strings.Fields(msg.CommandArguments())
	var from, to string
	if len(args) > 0 {
		from = args[0]
	}
	if len(args) > 1 {
		to = args[1]
	}

	resp := b.desk.FetchStatistics(ctx, from, to)
	data := resp.DashboardData

	var sb strings.Builder
	sb.WriteString("📊 Dashboard")
	if from != "" || to != "" {
		sb.WriteString(fmt.Sprintf(" (%s – %s)", orDash(from), orDash(to)))
	}
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Open: %d\n", data.OpenExams))
	sb.WriteString(fmt.Sprintf("Closed: %d\n", data.ClosedExams))
	sb.WriteString(fmt.Sprintf("Average processing days: %.0f", data.AverageProcessingDays))
	return b.sendMessage(msg.Chat.ID, sb.String())
}

func (b *Bot) handleFind(ctx context.Context, msg *tgbotapi.Message) error {
	return b.lookup(ctx, msg, true)
}

func (b *Bot) handleOrder(ctx context.Context, msg *tgbotapi.Message) error {
	return b.lookup(ctx, msg, false)
}

func (b *Bot) lookup(ctx context.Context, msg *tgbotapi.Message, bySerial bool) error {
	value := strings.TrimSpace(msg.CommandArguments())
	if value == "" {
		if bySerial {
			return fmt.Errorf("usage: /find <serial>")
		}
		return fmt.Errorf("usage: /order <order number>")
	}

	resp := b.desk.FindRecord(ctx, value, bySerial)
	if !resp.Success || resp.ExamData == nil {
		reason := resp.Message
		if reason == "" {
			reason = resp.Error
		}
		return b.sendMessage(msg.Chat.ID, fmt.Sprintf("❌ %s", reason))
	}

	return b.sendMessage(msg.Chat.ID, formatExam(*resp.ExamData))
}

func formatExam(e models.ExamRecord) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Exam #%s\n", e.SerialNumber))
	sb.WriteString(fmt.Sprintf("Order: %s\n", e.OrderNumber))
	sb.WriteString(fmt.Sprintf("Factory: %s\n", e.Factory))
	sb.WriteString(fmt.Sprintf("Contact: %s (%s, %s)\n", e.ContactName, e.Phone, e.Email))
	sb.WriteString(fmt.Sprintf("Liaison: %s\n", e.LiaisonOfficer))
	sb.WriteString(fmt.Sprintf("Quantity: %s\n", e.Quantity))
	sb.WriteString(fmt.Sprintf("Requested: %s\n", e.RequestedDate))
	sb.WriteString(fmt.Sprintf("Status: %s", e.Status))
	if e.IsClosed() {
		sb.WriteString(fmt.Sprintf("\nClosed: %s, exam %s\n", e.ClosingDate, e.ExamNumber))
		sb.WriteString(fmt.Sprintf("Passed/failed: %s/%s, %s days", e.Passed, e.Failed, e.ProcessingDays))
	}
	return sb.String()
}

func (b *Bot) handleOpen(ctx context.Context, msg *tgbotapi.Message) error {
	resp := b.desk.FilterExams(ctx, models.StatusOpen, "")
	if !resp.Success {
		return fmt.Errorf("could not load exams: %s", resp.Error)
	}

	if len(resp.Exams) == 0 {
		return b.sendMessage(msg.Chat.ID, "No open exams 🎉")
	}

	return b.sendHTML(msg.Chat.ID, "<pre>"+html.EscapeString(openTable(resp.Exams))+"</pre>")
}

func openTable(exams []models.ExamRecord) string {
	var sb strings.Builder
	table := tablewriter.NewWriter(&sb)
	table.SetHeader([]string{"Serial", "Order", "Factory", "Requested"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)

	for i, e := range exams {
		if i == openTableLimit {
			table.Append([]string{"…", fmt.Sprintf("+%d more", len(exams)-openTableLimit), "", ""})
			break
		}
		table.Append([]string{e.SerialNumber.String(), e.OrderNumber.String(), e.Factory.String(), e.RequestedDate.String()})
	}
	table.Render()
	return sb.String()
}

func (b *Bot) handleSetURL(ctx context.Context, msg *tgbotapi.Message) error {
	url := strings.TrimSpace(msg.CommandArguments())
	if url == "" {
		return fmt.Errorf("usage: /seturl <url>")
	}
	if err := b.desk.SetPrimaryURL(ctx, url); err != nil {
		return err
	}
	return b.sendMessage(msg.Chat.ID, "✅ Web app URL updated")
}

func (b *Bot) handlePing(ctx context.Context, msg *tgbotapi.Message) error {
	res := b.desk.TestConnection(ctx)
	icon := "✅"
	if !res.Success {
		icon = "❌"
	}
	return b.sendMessage(msg.Chat.ID, fmt.Sprintf("%s %s", icon, res.Message))
}

func orDash(s string) string {
	if s == "" {
		return "…"
	}
	return s
}

func (b *Bot) sendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendHTML(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := b.api.Send(msg)
	return err
}
