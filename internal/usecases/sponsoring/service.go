package sponsoring

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/commerce-insights-api/internal/domain"
	"github.com/vfg2006/commerce-insights-api/pkg/normalize"
)

// Ranker acumula as vendas por código de padrinho e elege o melhor
// vendedor.
type Ranker interface {
	SponsorSales(orders []domain.Order) map[string]domain.ReferralEntry
	BestSeller(sales map[string]domain.ReferralEntry) (string, domain.ReferralEntry, bool)
}

type Service struct {
	// nome normalizado do produto que carrega o código de padrinho
	referralProduct string
}

func NewService(referralProductName string) Ranker {
	return &Service{
		referralProduct: normalize.ProductName(referralProductName),
	}
}

// SponsorSales atribui as vendas de cada pedido a um código de padrinho.
// O código vem da resposta do primeiro campo customizado do item de
// apadrinhamento; um pedido contribui para no máximo um código. Os itens
// restantes do pedido — excluindo os com o nome do produto de
// apadrinhamento — são acumulados sob esse código, com as mesmas regras
// de resolução de valor do resumo de vendas.
func (s *Service) SponsorSales(orders []domain.Order) map[string]domain.ReferralEntry {
	sales := make(map[string]domain.ReferralEntry)

	for _, order := range orders {
		sponsorCode := s.findSponsorCode(order)
		if sponsorCode == "" {
			continue
		}

		for _, item := range order.Items {
			if normalize.ProductName(item.Name) == s.referralProduct {
				continue
			}

			lineRevenue, err := item.LineRevenue()
			if err != nil {
				logrus.WithError(domain.NewOrderDataError(err, order.ID, "item '"+item.Name+"'")).
					Error("Item ignorado na atribuição de padrinho")
				continue
			}

			entry := sales[sponsorCode]
			entry.Quantity += item.Count()
			entry.Revenue = entry.Revenue.Add(lineRevenue)
			sales[sponsorCode] = entry
		}
	}

	return sales
}

// findSponsorCode procura o item de apadrinhamento no pedido e extrai o
// código normalizado da resposta do primeiro campo customizado.
func (s *Service) findSponsorCode(order domain.Order) string {
	for _, item := range order.Items {
		if normalize.ProductName(item.Name) != s.referralProduct {
			continue
		}

		if len(item.CustomFields) == 0 {
			return ""
		}

		answer := strings.TrimSpace(item.CustomFields[0].Answer)
		if answer == "" {
			return ""
		}

		return normalize.ReferralCode(answer)
	}

	return ""
}

// BestSeller elege o código com a maior quantidade acumulada. Empates
// resolvem para o código lexicograficamente menor, para a escolha ser
// determinística independente da ordem de iteração do mapa.
func (s *Service) BestSeller(sales map[string]domain.ReferralEntry) (string, domain.ReferralEntry, bool) {
	var (
		bestCode  string
		bestEntry domain.ReferralEntry
		found     bool
	)

	for code, entry := range sales {
		if !found ||
			entry.Quantity > bestEntry.Quantity ||
			(entry.Quantity == bestEntry.Quantity && code < bestCode) {
			bestCode = code
			bestEntry = entry
			found = true
		}
	}

	return bestCode, bestEntry, found
}
