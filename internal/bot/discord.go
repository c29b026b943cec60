package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/DonkeyXBT/ticketplatform-sub000/internal/domain"
)

const (
	ackCustomIDPrefix = "ticket_ack:"

	colorUrgent = 0xE74C3C
	colorNormal = 0x3498DB
)

// Acknowledger is the shared acknowledgment mutation; the button callback
// translates the Discord interaction into this call.
type Acknowledger interface {
	Acknowledge(ctx context.Context, ticketID uint, actorDiscordID string) error
}

// DiscordGateway is the messaging gateway: an explicitly constructed client
// with an Open/Close lifecycle, injected into the reminder pipeline instead
// of living as package state.
type DiscordGateway struct {
	session *discordgo.Session
	ack     Acknowledger
}

func NewDiscordGateway(botToken string) (*DiscordGateway, error) {
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("discordgo.New -> %w", err)
	}

	session.Identify.Intents = discordgo.IntentsDirectMessages

	return &DiscordGateway{session: session}, nil
}

// Open connects the websocket session and starts listening for the
// acknowledgment button.
func (g *DiscordGateway) Open(ack Acknowledger) error {
	g.ack = ack
	g.session.AddHandler(g.handleInteraction)

	if err := g.session.Open(); err != nil {
		return fmt.Errorf("g.session.Open -> %w", err)
	}

	zap.L().Info("discord gateway connected",
		zap.String("bot", g.session.State.User.Username))

	return nil
}

func (g *DiscordGateway) Close() error {
	return g.session.Close()
}

// SendReminder DMs the seller one delivery reminder with an acknowledgment
// button and returns Discord's message id.
func (g *DiscordGateway) SendReminder(ctx context.Context, discordID string, rt domain.ReminderTicket) (string, error) {
	channel, err := g.session.UserChannelCreate(discordID, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("g.session.UserChannelCreate -> %w", err)
	}

	msg, err := g.session.ChannelMessageSendComplex(channel.ID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{reminderEmbed(rt)},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Tickets delivered",
						Style:    discordgo.SuccessButton,
						CustomID: ackCustomIDPrefix + strconv.FormatUint(uint64(rt.Ticket.ID), 10),
					},
				},
			},
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("g.session.ChannelMessageSendComplex -> %w", err)
	}

	return msg.ID, nil
}

func reminderEmbed(rt domain.ReminderTicket) *discordgo.MessageEmbed {
	title := "🎟️ Ticket delivery reminder"
	color := colorNormal
	if rt.Urgent {
		title = "🚨 URGENT — deliver your tickets"
		color = colorUrgent
	}

	seat := strings.TrimSpace(fmt.Sprintf("Section %v, Row %v, Seat %v",
		orDash(rt.Ticket.Section), orDash(rt.Ticket.Row), orDash(rt.Ticket.Seat)))

	fields := []*discordgo.MessageEmbedField{
		{Name: "Event", Value: rt.Ticket.Artist, Inline: true},
		{Name: "Date", Value: rt.Ticket.EventDate.Format("Mon, 02 Jan 2006"), Inline: true},
		{Name: "Location", Value: rt.Ticket.Location, Inline: true},
		{Name: "Seats", Value: seat, Inline: false},
	}

	if rt.BuyerName != "" || rt.BuyerEmail != "" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Buyer",
			Value:  strings.TrimSpace(rt.BuyerName + " " + rt.BuyerEmail),
			Inline: false,
		})
	}

	return &discordgo.MessageEmbed{
		Title: title,
		Color: color,
		Description: fmt.Sprintf("The event is in %v day(s). Hit the button below once the tickets are with the buyer.",
			rt.DaysUntilShow),
		Fields: fields,
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}

	return s
}

func (g *DiscordGateway) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	customID := i.MessageComponentData().CustomID
	if !strings.HasPrefix(customID, ackCustomIDPrefix) {
		return
	}

	ticketID, err := strconv.ParseUint(strings.TrimPrefix(customID, ackCustomIDPrefix), 10, 64)
	if err != nil {
		return
	}

	actor := interactionUser(i)
	if actor == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	content := "✅ Delivery confirmed. No more reminders for this ticket."
	if err = g.ack.Acknowledge(ctx, uint(ticketID), actor); err != nil {
		zap.L().Warn("button acknowledgment rejected",
			zap.Uint64("ticket_id", ticketID),
			zap.String("discord_id", actor),
			zap.Error(err))
		content = "Could not confirm delivery for this ticket."
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		zap.L().Warn("interaction response failed", zap.Error(err))
	}
}

// interactionUser works for DMs (User set) and guild channels (Member set).
func interactionUser(i *discordgo.InteractionCreate) string {
	if i.User != nil {
		return i.User.ID
	}
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}

	return ""
}
