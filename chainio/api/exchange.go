package api

import (
	"context"

	cosmwasmapi "github.com/dorium/dorium-contracts/cosmwasm-api"
	"github.com/dorium/dorium-contracts/cosmwasm-schema/exchange"
)

type Exchange struct {
	*Code
}

func NewExchange(client cosmwasmapi.SigningClient, sender string) *Exchange {
	return &Exchange{Code: NewCode(client, sender)}
}

func (e *Exchange) Instantiate(ctx context.Context, codeID uint64, initMsg exchange.InstantiateMsg, label, admin string) (*ExchangeInstance, *cosmwasmapi.InstantiateResult, error) {
	contract, res, err := e.Code.Instantiate(ctx, codeID, &initMsg, label, admin, nil)
	if err != nil {
		return nil, nil, err
	}
	return &ExchangeInstance{Contract: contract}, res, nil
}

func (e *Exchange) Use(contractAddr string) *ExchangeInstance {
	return &ExchangeInstance{Contract: e.Code.Use(contractAddr)}
}

type ExchangeInstance struct {
	*Contract
}

// Exchange sends amount of token to the exchange contract, which pays out in return.
func (e *ExchangeInstance) Exchange(ctx context.Context, sender string, token *CW20Instance, amount string) (string, error) {
	hook, err := (&exchange.ReceiveMsg{Send: &exchange.Send{}}).Marshal()
	if err != nil {
		return "", err
	}
	return token.Send(ctx, e.from(sender), e.Address, amount, hook)
}

func (e *ExchangeInstance) Exchanged(ctx context.Context) (string, error) {
	res, err := query[exchange.ExchangedResponse](ctx, e.Contract, &exchange.QueryMsg{GetExchanged: &exchange.GetExchanged{}})
	return res.Exchanged, err
}
