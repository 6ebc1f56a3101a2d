package cli

import (
	"context"
	"strings"

	"github.com/epic-events/epic-crm/internal/contracts"
)

func listContracts(ctx context.Context, sh *Shell, _ []string) error {
	list, err := sh.services.Contracts.List(ctx, contracts.ListFilter{})
	if err != nil {
		return err
	}
	return renderContracts(sh.out, list)
}

func viewContract(ctx context.Context, sh *Shell, args []string) error {
	id, err := parseID(args[0], "id")
	if err != nil {
		return err
	}
	contract, err := sh.services.Contracts.Get(ctx, id)
	if err != nil {
		return err
	}
	return renderContract(sh.out, contract)
}

func filterContracts(ctx context.Context, sh *Shell, args []string) error {
	status, err := contracts.ParseStatus(strings.Join(args, " "))
	if err != nil {
		return err
	}
	list, err := sh.services.Contracts.List(ctx, contracts.ListFilter{Status: &status})
	if err != nil {
		return err
	}
	return renderContracts(sh.out, list)
}

func createContract(ctx context.Context, sh *Shell, args []string) error {
	caller, err := callerOf(ctx)
	if err != nil {
		return err
	}
	clientID, err := parseID(args[0], "client_id")
	if err != nil {
		return err
	}
	total, err := parseMoney(args[1], "total_amount")
	if err != nil {
		return err
	}
	remaining, err := parseMoney(args[2], "amount_remaining")
	if err != nil {
		return err
	}
	contract, err := sh.services.Contracts.Create(ctx, contracts.CreateContractRequest{
		ClientID:        clientID,
		TotalAmount:     total,
		AmountRemaining: remaining,
		Status:          strings.Join(args[3:], " "),
	}, caller.UserID)
	if err != nil {
		return err
	}
	sh.printf("Created contract #%d for %s, %s (%s remaining).\n",
		contract.ID, contract.ClientName, formatMoney(contract.TotalAmount), formatMoney(contract.AmountRemaining))
	return nil
}

func updateContract(ctx context.Context, sh *Shell, args []string) error {
	id, err := parseID(args[0], "id")
	if err != nil {
		return err
	}
	kv, err := parseAssignments(args[1:])
	if err != nil {
		return err
	}
	if err := kv.only("total_amount", "amount_remaining", "status", "sales_contact_id"); err != nil {
		return err
	}
	total, err := kv.money("total_amount")
	if err != nil {
		return err
	}
	remaining, err := kv.money("amount_remaining")
	if err != nil {
		return err
	}
	salesContactID, err := kv.id("sales_contact_id")
	if err != nil {
		return err
	}
	contract, err := sh.services.Contracts.Update(ctx, id, contracts.UpdateContractRequest{
		TotalAmount:     total,
		AmountRemaining: remaining,
		Status:          kv.str("status"),
		SalesContactID:  salesContactID,
	})
	if err != nil {
		return err
	}
	sh.printf("Updated contract #%d (%s, %s remaining).\n", contract.ID, contract.Status, formatMoney(contract.AmountRemaining))
	return nil
}

func signContract(ctx context.Context, sh *Shell, args []string) error {
	id, err := parseID(args[0], "id")
	if err != nil {
		return err
	}
	contract, err := sh.services.Contracts.Sign(ctx, id)
	if err != nil {
		return err
	}
	sh.printf("Contract #%d is %s.\n", contract.ID, contract.Status)
	return nil
}

func deleteContract(ctx context.Context, sh *Shell, args []string) error {
	id, err := parseID(args[0], "id")
	if err != nil {
		return err
	}
	if err := sh.services.Contracts.Delete(ctx, id); err != nil {
		return err
	}
	sh.printf("Deleted contract #%d with its events.\n", id)
	return nil
}
