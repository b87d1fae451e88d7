package limit

import (
	"context"
	"errors"
	"fmt"
	"overseer/core"
	"overseer/pkg/risk"

	"github.com/fox-one/pkg/logger"
	"github.com/sirupsen/logrus"
)

type limitService struct {
	codec      core.AddressCodec
	protocols  core.ProtocolConfigStore
	whitelists core.WhitelistStore
	oracle     core.PriceOracle
}

// New borrow limit calculator
func New(
	codec core.AddressCodec,
	protocols core.ProtocolConfigStore,
	whitelists core.WhitelistStore,
	oracle core.PriceOracle,
) core.BorrowLimitService {
	return &limitService{
		codec:      codec,
		protocols:  protocols,
		whitelists: whitelists,
		oracle:     oracle,
	}
}

// ComputeBorrowLimit sums risk.CollateralValue over the basket in basket order.
//
// Oracle update times are reported per collateral but not checked.
func (s *limitService) ComputeBorrowLimit(ctx context.Context, collaterals core.Collaterals) (*core.BorrowLimit, error) {
	log := logger.FromContext(ctx).WithField("service", "limit")

	cfg, err := s.protocols.Get(ctx)
	if err != nil {
		log.WithError(err).Errorln("protocols.Get")
		return nil, err
	}

	oracle, err := s.codec.Human(cfg.OracleContract)
	if err != nil {
		return nil, err
	}

	result := &core.BorrowLimit{
		Valuations: make([]*core.CollateralValuation, 0, len(collaterals)),
	}

	for _, c := range collaterals {
		item, err := s.whitelists.Find(ctx, c.Asset)
		if err != nil {
			log.WithError(err).Errorln("whitelists.Find")
			return nil, err
		}

		if item.ID == 0 {
			return nil, fmt.Errorf("%w: %s", core.ErrUnknownCollateral, s.codec.MustHuman(c.Asset))
		}

		quote, err := s.codec.Human(c.Asset)
		if err != nil {
			return nil, err
		}

		price, err := s.oracle.Price(ctx, oracle, cfg.BaseDenom, quote)
		if err != nil {
			if !errors.Is(err, core.ErrPriceUnavailable) {
				err = fmt.Errorf("%w: %s: %v", core.ErrPriceUnavailable, quote, err)
			}

			log.WithError(err).Infoln("oracle.Price")
			return nil, err
		}

		amount := c.Amount
		value, err := risk.CollateralValue(&amount, item.LTV, price.Rate)
		if err != nil {
			return nil, err
		}

		if err := risk.Accumulate(&result.Limit, value); err != nil {
			return nil, err
		}

		result.Valuations = append(result.Valuations, &core.CollateralValuation{
			Asset:            c.Asset,
			Amount:           amount,
			LTV:              item.LTV,
			Price:            price.Rate,
			LastUpdatedBase:  price.LastUpdatedBase,
			LastUpdatedQuote: price.LastUpdatedQuote,
			Value:            *value,
		})

		log.WithFields(logrus.Fields{
			"collateral": quote,
			"amount":     amount.Dec(),
			"ltv":        item.LTV,
			"price":      price.Rate,
			"value":      value.Dec(),
		}).Debugln("collateral valued")
	}

	return result, nil
}
