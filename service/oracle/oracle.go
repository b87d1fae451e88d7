package oracle

import (
	"context"
	"fmt"
	"net/url"
	"overseer/core"
	"overseer/pkg/resthttp"
	"strings"

	"github.com/fox-one/pkg/logger"
	"github.com/go-resty/resty/v2"
)

type oracleService struct {
	client   *resty.Client
	endpoint string
}

// New oracle collaborator client over http
func New(cfg core.Oracle) core.PriceOracle {
	return &oracleService{
		client:   resthttp.New(cfg.Timeout),
		endpoint: strings.TrimSuffix(cfg.EndPoint, "/"),
	}
}

// Price GET {endpoint}/contracts/{oracle}/price?base=&quote=
func (s *oracleService) Price(ctx context.Context, oracle, base, quote string) (*core.OraclePrice, error) {
	uri := fmt.Sprintf("%s/contracts/%s/price", s.endpoint, url.PathEscape(oracle))

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("base", base).
		SetQueryParam("quote", quote).
		Get(uri)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("oracle: query price")
		return nil, fmt.Errorf("%w: %s/%s: %v", core.ErrPriceUnavailable, base, quote, err)
	}

	var price core.OraclePrice
	if err := resthttp.ParseResponse(resp, &price); err != nil {
		return nil, fmt.Errorf("%w: %s/%s: %v", core.ErrPriceUnavailable, base, quote, err)
	}

	if price.Rate.IsNegative() {
		return nil, fmt.Errorf("%w: %s/%s: negative rate %s", core.ErrPriceUnavailable, base, quote, price.Rate)
	}

	return &price, nil
}
