package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/epic-events/epic-crm/internal/clients"
	"github.com/epic-events/epic-crm/internal/contracts"
	"github.com/epic-events/epic-crm/internal/events"
	"github.com/epic-events/epic-crm/internal/rbac"
	"github.com/epic-events/epic-crm/internal/users"
)

const dateLayout = "2006-01-02 15:04"

var amounts = message.NewPrinter(language.English)

func formatMoney(m contracts.Money) string {
	return amounts.Sprintf("%.2f", m.Float())
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(dateLayout)
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return formatTime(*t)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func renderUsers(w io.Writer, list []users.User) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No users.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tUSERNAME\tROLE\tEMAIL")
	for _, u := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Role, u.Email)
	}
	return tw.Flush()
}

func renderUser(w io.Writer, u *users.User) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "ID:\t%d\n", u.ID)
	fmt.Fprintf(tw, "Username:\t%s\n", u.Username)
	fmt.Fprintf(tw, "Role:\t%s\n", u.Role)
	fmt.Fprintf(tw, "Email:\t%s\n", u.Email)
	fmt.Fprintf(tw, "Created:\t%s\n", formatTime(u.CreatedAt))
	fmt.Fprintf(tw, "Updated:\t%s\n", formatTime(u.UpdatedAt))
	return tw.Flush()
}

func renderProfile(w io.Writer, p *users.Profile) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "Username:\t%s\n", p.Username)
	fmt.Fprintf(tw, "Role:\t%s\n", p.Role)
	fmt.Fprintf(tw, "Email:\t%s\n", p.Email)
	fmt.Fprintf(tw, "Bio:\t%s\n", orDash(p.Bio))
	fmt.Fprintf(tw, "Updated:\t%s\n", formatTime(p.UpdatedAt))
	return tw.Flush()
}

func renderClients(w io.Writer, list []clients.Client) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No clients.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tCOMPANY\tEMAIL\tPHONE\tSALES CONTACT")
	for _, c := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.FullName(), c.CompanyName, c.Email, orDash(c.Phone), orDash(c.SalesContact))
	}
	return tw.Flush()
}

func renderClient(w io.Writer, c *clients.Client) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "ID:\t%d\n", c.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", c.FullName())
	fmt.Fprintf(tw, "Company:\t%s\n", c.CompanyName)
	fmt.Fprintf(tw, "Email:\t%s\n", c.Email)
	fmt.Fprintf(tw, "Phone:\t%s\n", orDash(c.Phone))
	fmt.Fprintf(tw, "Last contact:\t%s\n", formatOptionalTime(c.LastContact))
	fmt.Fprintf(tw, "Sales contact:\t%s\n", orDash(c.SalesContact))
	fmt.Fprintf(tw, "Created:\t%s\n", formatTime(c.CreatedAt))
	fmt.Fprintf(tw, "Updated:\t%s\n", formatTime(c.UpdatedAt))
	return tw.Flush()
}

func renderContracts(w io.Writer, list []contracts.Contract) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No contracts.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tCLIENT\tTOTAL\tREMAINING\tSTATUS\tSALES CONTACT\tCREATED")
	for _, c := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.ClientName, formatMoney(c.TotalAmount), formatMoney(c.AmountRemaining),
			c.Status, orDash(c.SalesContact), formatTime(c.DateCreated))
	}
	return tw.Flush()
}

func renderContract(w io.Writer, c *contracts.Contract) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "ID:\t%d\n", c.ID)
	fmt.Fprintf(tw, "Client:\t%s (#%d)\n", c.ClientName, c.ClientID)
	fmt.Fprintf(tw, "Total amount:\t%s\n", formatMoney(c.TotalAmount))
	fmt.Fprintf(tw, "Amount remaining:\t%s\n", formatMoney(c.AmountRemaining))
	fmt.Fprintf(tw, "Status:\t%s\n", c.Status)
	fmt.Fprintf(tw, "Sales contact:\t%s\n", orDash(c.SalesContact))
	fmt.Fprintf(tw, "Date created:\t%s\n", formatTime(c.DateCreated))
	fmt.Fprintf(tw, "Updated:\t%s\n", formatTime(c.UpdatedAt))
	return tw.Flush()
}

func renderEvents(w io.Writer, list []events.Event) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No events.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tCONTRACT\tCLIENT\tSTART\tEND\tLOCATION\tATTENDEES\tSUPPORT")
	for _, e := range list {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\t%d\t%s\n",
			e.ID, e.ContractID, e.ClientName, formatTime(e.EventDateStart), formatTime(e.EventDateEnd),
			e.Location, e.Attendees, orDash(e.SupportContact))
	}
	return tw.Flush()
}

func renderEvent(w io.Writer, e *events.Event) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "ID:\t%d\n", e.ID)
	fmt.Fprintf(tw, "Contract:\t#%d\n", e.ContractID)
	fmt.Fprintf(tw, "Client:\t%s\n", e.ClientName)
	fmt.Fprintf(tw, "Start:\t%s\n", formatTime(e.EventDateStart))
	fmt.Fprintf(tw, "End:\t%s\n", formatTime(e.EventDateEnd))
	fmt.Fprintf(tw, "Location:\t%s\n", e.Location)
	fmt.Fprintf(tw, "Attendees:\t%d\n", e.Attendees)
	fmt.Fprintf(tw, "Support contact:\t%s\n", orDash(e.SupportContact))
	fmt.Fprintf(tw, "Notes:\t%s\n", orDash(e.Notes))
	return tw.Flush()
}

func renderGrants(w io.Writer, grants []rbac.Grant) error {
	if len(grants) == 0 {
		_, err := fmt.Fprintln(w, "No permissions loaded. Run `epiccrm permissions reseed`.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ROLE\tENTITY\tACTION")
	for _, g := range grants {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", g.Role, g.Entity, g.Action)
	}
	return tw.Flush()
}
