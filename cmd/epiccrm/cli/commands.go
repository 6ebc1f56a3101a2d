package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/epic-events/epic-crm/internal/shared"
)

type command struct {
	name    string
	usage   string
	summary string
	// entity and action name the permission checked before run. Both empty means ungated.
	entity      shared.Entity
	action      shared.Action
	needsCaller bool
	minArgs     int
	run         func(ctx context.Context, sh *Shell, args []string) error
}

func (c *command) gated() bool {
	return c.entity != "" && c.action != ""
}

func (c *command) usageError() error {
	return shared.NewValidationError("", "usage: %s", c.usage)
}

func gate(entity shared.Entity, action shared.Action) func(*command) {
	return func(c *command) {
		c.entity = entity
		c.action = action
	}
}

func commandTable() []*command {
	var table []*command
	add := func(c *command, opts ...func(*command)) {
		for _, opt := range opts {
			opt(c)
		}
		table = append(table, c)
	}

	self := func(c *command) { c.needsCaller = true }

	add(&command{name: "view_profile", usage: "view_profile", summary: "show your profile", run: viewProfile}, self)
	add(&command{name: "update_profile", usage: "update_profile <email> [bio...]", summary: "change your email and bio", minArgs: 1, run: updateProfile}, self)

	add(&command{name: "list_users", usage: "list_users", summary: "list staff accounts", run: listUsers}, gate(shared.EntityUser, shared.ActionRead))
	add(&command{name: "view_user", usage: "view_user <id>", summary: "show a staff account", minArgs: 1, run: viewUser}, gate(shared.EntityUser, shared.ActionRead))
	add(&command{name: "create_user", usage: "create_user <username> <role> <email>", summary: "create a staff account, password is prompted", minArgs: 3, run: createUser}, gate(shared.EntityUser, shared.ActionCreate))
	add(&command{name: "update_user", usage: "update_user <id> key=value... (username, email, role, password)", summary: "edit a staff account", minArgs: 2, run: updateUser}, gate(shared.EntityUser, shared.ActionUpdate))
	add(&command{name: "delete_user", usage: "delete_user <id>", summary: "delete a staff account", minArgs: 1, run: deleteUser}, gate(shared.EntityUser, shared.ActionDelete))

	add(&command{name: "list_clients", usage: "list_clients", summary: "list clients", run: listClients}, gate(shared.EntityClient, shared.ActionRead))
	add(&command{name: "view_client", usage: "view_client <id>", summary: "show a client", minArgs: 1, run: viewClient}, gate(shared.EntityClient, shared.ActionRead))
	add(&command{name: "create_client", usage: "create_client <first_name> <last_name> <email> <phone> <company_name...>", summary: "create a client you are the sales contact of", minArgs: 5, run: createClient}, gate(shared.EntityClient, shared.ActionCreate))
	add(&command{name: "update_client", usage: "update_client <id> key=value... (first_name, last_name, email, phone, company_name, last_contact, sales_contact_id)", summary: "edit a client", minArgs: 2, run: updateClient}, gate(shared.EntityClient, shared.ActionUpdate))
	add(&command{name: "delete_client", usage: "delete_client <id>", summary: "delete a client with its contracts and events", minArgs: 1, run: deleteClient}, gate(shared.EntityClient, shared.ActionDelete))

	add(&command{name: "list_contracts", usage: "list_contracts", summary: "list contracts", run: listContracts}, gate(shared.EntityContract, shared.ActionRead))
	add(&command{name: "view_contract", usage: "view_contract <id>", summary: "show a contract", minArgs: 1, run: viewContract}, gate(shared.EntityContract, shared.ActionRead))
	add(&command{name: "filter_contracts", usage: "filter_contracts <status...>", summary: "list contracts with the given status", minArgs: 1, run: filterContracts}, gate(shared.EntityContract, shared.ActionRead))
	add(&command{name: "create_contract", usage: "create_contract <client_id> <total_amount> <amount_remaining> <status...>", summary: "create a contract for a client", minArgs: 4, run: createContract}, gate(shared.EntityContract, shared.ActionCreate))
	add(&command{name: "update_contract", usage: "update_contract <id> key=value... (total_amount, amount_remaining, status, sales_contact_id)", summary: "edit a contract", minArgs: 2, run: updateContract}, gate(shared.EntityContract, shared.ActionUpdate))
	add(&command{name: "sign_contract", usage: "sign_contract <id>", summary: "mark a contract as signed", minArgs: 1, run: signContract}, gate(shared.EntityContract, shared.ActionUpdate))
	add(&command{name: "delete_contract", usage: "delete_contract <id>", summary: "delete a contract with its events", minArgs: 1, run: deleteContract}, gate(shared.EntityContract, shared.ActionDelete))

	add(&command{name: "list_events", usage: "list_events", summary: "list events", run: listEvents}, gate(shared.EntityEvent, shared.ActionRead))
	add(&command{name: "view_event", usage: "view_event <id>", summary: "show an event", minArgs: 1, run: viewEvent}, gate(shared.EntityEvent, shared.ActionRead))
	add(&command{name: "filter_events_unassigned", usage: "filter_events_unassigned", summary: "list events without a support contact", run: filterEventsUnassigned}, gate(shared.EntityEvent, shared.ActionRead))
	add(&command{name: "filter_events_assigned_to_me", usage: "filter_events_assigned_to_me", summary: "list events you support", run: filterEventsAssignedToMe}, gate(shared.EntityEvent, shared.ActionRead))
	add(&command{name: "create_event", usage: "create_event <contract_id> <start> <end> <attendees> <location...>", summary: "schedule an event for a signed contract", minArgs: 5, run: createEvent}, gate(shared.EntityEvent, shared.ActionCreate))
	add(&command{name: "update_event", usage: "update_event <id> key=value... (event_date_start, event_date_end, location, attendees, notes)", summary: "edit an event", minArgs: 2, run: updateEvent}, gate(shared.EntityEvent, shared.ActionUpdate))
	add(&command{name: "assign_support", usage: "assign_support <event_id> <user_id>", summary: "set the support contact of an event", minArgs: 2, run: assignSupport}, gate(shared.EntityEvent, shared.ActionUpdate))
	add(&command{name: "delete_event", usage: "delete_event <id>", summary: "delete an event", minArgs: 1, run: deleteEvent}, gate(shared.EntityEvent, shared.ActionDelete))

	add(&command{name: "help", usage: "help", summary: "list the commands your role may run", run: help})
	add(&command{name: "whoami", usage: "whoami", summary: "show who is logged in", run: whoami}, self)
	add(&command{name: "logout", usage: "logout", summary: "end the session", run: func(context.Context, *Shell, []string) error { return errLogout }})
	add(&command{name: "exit", usage: "exit", summary: "leave the shell, keeping any stored session", run: func(context.Context, *Shell, []string) error { return errExit }})
	return table
}

func help(ctx context.Context, sh *Shell, _ []string) error {
	caller, _ := shared.CallerFromContext(ctx)
	tw := tabwriter.NewWriter(sh.out, 0, 0, 2, ' ', 0)
	for _, c := range sh.ordered {
		if c.gated() && (sh.guard.Authorizer == nil || !sh.guard.Authorizer.IsAuthorized(caller.Role, c.entity, c.action)) {
			continue
		}
		fmt.Fprintf(tw, "  %s\t%s\n", c.usage, c.summary)
	}
	return tw.Flush()
}

func whoami(ctx context.Context, sh *Shell, _ []string) error {
	caller, err := callerOf(ctx)
	if err != nil {
		return err
	}
	sh.printf("%s (%s), user #%d\n", caller.Username, caller.Role, caller.UserID)
	return nil
}
