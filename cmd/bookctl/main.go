// Command bookctl walks through a booking from the terminal against a running API.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/petgroom/petgroom-api/internal/client"
	"github.com/petgroom/petgroom-api/internal/domain/booking"
)

func main() {
	apiURL := flag.String("api", envOr("PETGROOM_API_URL", "http://localhost:8080/api"), "base URL of the booking API")
	timeout := flag.Duration("timeout", 15*time.Second, "per-request timeout")
	verbose := flag.Bool("v", false, "log requests")
	flag.Parse()

	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		Level(level).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := &session{
		api: client.New(client.Config{BaseURL: *apiURL, Timeout: *timeout}),
		in:  bufio.NewScanner(os.Stdin),
		out: os.Stdout,
	}
	if err := s.run(ctx); err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("bookctl failed")
		os.Exit(1)
	}
}

type api interface {
	booking.BookingCreator
	ListBookings(ctx context.Context, date string) ([]*booking.Booking, error)
}

type session struct {
	api  api
	in   *bufio.Scanner
	out  io.Writer
	now  func() time.Time
	flow *booking.Flow
}

func (s *session) run(ctx context.Context) error {
	if s.now == nil {
		s.now = time.Now
	}
	if err := s.open(ctx); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		switch s.flow.State() {
		case booking.StateSelectingDate:
			err = s.askDate()
		case booking.StateSelectingTime, booking.StateFillingForm:
			if s.flow.SelectedTime() == "" {
				err = s.askTime(ctx)
			} else {
				err = s.askForm(ctx)
			}
		case booking.StateSubmitted:
			b := s.flow.Booking()
			fmt.Fprintf(s.out, "\nAgendamento confirmado! %s, %s às %s (%s).\n", b.Name, b.Date, b.Time, b.Service)
			again, err := s.ask("Fazer outro agendamento? (s/N) ")
			if err != nil {
				return err
			}
			if !strings.EqualFold(again, "s") {
				return nil
			}
			if err := s.open(ctx); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}
}

// open takes a fresh bookings snapshot and restarts the flow
func (s *session) open(ctx context.Context) error {
	snapshot, err := s.api.ListBookings(ctx, "")
	if err != nil {
		return fmt.Errorf("load bookings: %w", err)
	}
	if s.flow == nil {
		s.flow = booking.NewFlow(s.now(), snapshot)
	} else {
		s.flow.Reset(s.now(), snapshot)
	}
	return nil
}

func (s *session) askDate() error {
	printCalendar(s.out, s.flow.Calendar())
	day, err := s.ask("Escolha o dia: ")
	if err != nil {
		return err
	}

	date, ok := dateForDay(s.flow.Calendar(), day)
	if !ok {
		fmt.Fprintln(s.out, "Dia inválido.")
		return nil
	}
	if err := s.flow.SelectDate(date); err != nil {
		fmt.Fprintln(s.out, "Esse dia não está disponível para agendamento.")
	}
	return nil
}

func (s *session) askTime(ctx context.Context) error {
	fmt.Fprintf(s.out, "\nHorários para %s:\n", s.flow.SelectedDate())
	for _, slot := range s.flow.Slots() {
		mark := "livre"
		if !slot.Available {
			mark = "ocupado"
		}
		fmt.Fprintf(s.out, "  %s  %s\n", slot.Time, mark)
	}

	t, err := s.ask("Escolha o horário (ou 'voltar'): ")
	if err != nil {
		return err
	}
	if strings.EqualFold(t, "voltar") {
		return s.open(ctx)
	}
	if err := s.flow.SelectTime(t); err != nil {
		fmt.Fprintln(s.out, "Horário indisponível.")
	}
	return nil
}

func (s *session) askForm(ctx context.Context) error {
	form := s.flow.Form()
	fmt.Fprintf(s.out, "\n%s às %s\n", form.Date, form.Time)

	name, err := s.askDefault("Nome", form.Name)
	if err != nil {
		return err
	}
	phone, err := s.askDefault("Telefone", form.Phone)
	if err != nil {
		return err
	}
	service, err := s.askDefault("Serviço (tosa/banho)", form.Service)
	if err != nil {
		return err
	}

	_, err = s.flow.Submit(ctx, s.api, name, phone, strings.ToLower(service))
	var verr *booking.ValidationError
	switch {
	case err == nil:
	case errors.As(err, &verr):
		for field, msg := range verr.Fields {
			fmt.Fprintf(s.out, "  %s: %s\n", field, msg)
		}
	case errors.Is(err, booking.ErrSlotTaken):
		fmt.Fprintln(s.out, "Esse horário acabou de ser reservado. Escolha outro.")
		if err := s.open(ctx); err != nil {
			return err
		}
	default:
		fmt.Fprintf(s.out, "Não foi possível agendar: %v\n", err)
		if !client.IsRetryable(err) {
			return err
		}
	}
	return nil
}

func (s *session) ask(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *session) askDefault(label, current string) (string, error) {
	prompt := label + ": "
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]: ", label, current)
	}
	v, err := s.ask(prompt)
	if err != nil {
		return "", err
	}
	if v == "" {
		return current, nil
	}
	return v, nil
}

func printCalendar(w io.Writer, cal booking.Calendar) {
	fmt.Fprintf(w, "\n%02d/%d\n", cal.Month, cal.Year)
	for _, wd := range cal.Weekdays {
		fmt.Fprintf(w, "%4s", wd)
	}
	fmt.Fprintln(w)

	for i, cell := range cal.Cells {
		switch {
		case cell.State == booking.DayEmpty:
			fmt.Fprint(w, "    ")
		case cell.Selectable:
			fmt.Fprintf(w, "%4d", cell.Day)
		default:
			fmt.Fprintf(w, "%3d-", cell.Day)
		}
		if i%7 == 6 {
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintln(w)
}

func dateForDay(cal booking.Calendar, day string) (string, bool) {
	for _, cell := range cal.Cells {
		if cell.State != booking.DayEmpty && fmt.Sprint(cell.Day) == day {
			return cell.Date, true
		}
	}
	return "", false
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
