package cli

import (
	"context"
	"strings"

	"github.com/epic-events/epic-crm/internal/clients"
)

func listClients(ctx context.Context, sh *Shell, _ []string) error {
	list, err := sh.services.Clients.List(ctx, clients.ListFilter{})
	if err != nil {
		return err
	}
	return renderClients(sh.out, list)
}

func viewClient(ctx context.Context, sh *Shell, args []string) error {
	id, err := parseID(args[0], "id")
	if err != nil {
		return err
	}
	client, err := sh.services.Clients.Get(ctx, id)
	if err != nil {
		return err
	}
	return renderClient(sh.out, client)
}

func createClient(ctx context.Context, sh *Shell, args []string) error {
	caller, err := callerOf(ctx)
	if err != nil {
		return err
	}
	client, err := sh.services.Clients.Create(ctx, clients.CreateClientRequest{
		FirstName:   args[0],
		LastName:    args[1],
		Email:       args[2],
		Phone:       args[3],
		CompanyName: strings.Join(args[4:], " "),
	}, caller.UserID)
	if err != nil {
		return err
	}
	sh.printf("Created client %s of %s (#%d).\n", client.FullName(), client.CompanyName, client.ID)
	return nil
}

func updateClient(ctx context.Context, sh *Shell, args []string) error {
	id, err := parseID(args[0], "id")
	if err != nil {
		return err
	}
	kv, err := parseAssignments(args[1:])
	if err != nil {
		return err
	}
	if err := kv.only("first_name", "last_name", "email", "phone", "company_name", "last_contact", "sales_contact_id"); err != nil {
		return err
	}
	lastContact, err := kv.date("last_contact")
	if err != nil {
		return err
	}
	salesContactID, err := kv.id("sales_contact_id")
	if err != nil {
		return err
	}
	client, err := sh.services.Clients.Update(ctx, id, clients.UpdateClientRequest{
		FirstName:      kv.str("first_name"),
		LastName:       kv.str("last_name"),
		Email:          kv.str("email"),
		Phone:          kv.str("phone"),
		CompanyName:    kv.str("company_name"),
		LastContact:    lastContact,
		SalesContactID: salesContactID,
	})
	if err != nil {
		return err
	}
	sh.printf("Updated client %s (#%d).\n", client.FullName(), client.ID)
	return nil
}

func deleteClient(ctx context.Context, sh *Shell, args []string) error {
	id, err := parseID(args[0], "id")
	if err != nil {
		return err
	}
	if err := sh.services.Clients.Delete(ctx, id); err != nil {
		return err
	}
	sh.printf("Deleted client #%d with its contracts and events.\n", id)
	return nil
}
