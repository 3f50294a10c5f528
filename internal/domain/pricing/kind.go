// Package pricing implements the layered price calculation engine:
// active list resolution, base price lookup, cumulative rule application,
// product combinations, cost validation and supplier discount registration.
package pricing

// PriceListKind classifies a price list.
// Values mirror the legacy POS database and must not be renumbered.
type PriceListKind int

const (
	ListNormal      PriceListKind = 1
	ListPromotional PriceListKind = 2
	ListSpecial     PriceListKind = 3
)

// Valid reports whether k is a known list kind.
func (k PriceListKind) Valid() bool {
	return k >= ListNormal && k <= ListSpecial
}

func (k PriceListKind) String() string {
	switch k {
	case ListNormal:
		return "Normal"
	case ListPromotional:
		return "Promocional"
	case ListSpecial:
		return "Especial"
	default:
		return "unknown"
	}
}

// SalesChannel identifies the sales channel of a transaction.
type SalesChannel int

const (
	ChannelCounter   SalesChannel = 1
	ChannelWholesale SalesChannel = 2
	ChannelRetail    SalesChannel = 3
	ChannelOnline    SalesChannel = 4
	ChannelPhone     SalesChannel = 5
)

// Valid reports whether c is a known channel.
func (c SalesChannel) Valid() bool {
	return c >= ChannelCounter && c <= ChannelPhone
}

func (c SalesChannel) String() string {
	switch c {
	case ChannelCounter:
		return "Mostrador"
	case ChannelWholesale:
		return "Mayorista"
	case ChannelRetail:
		return "Minorista"
	case ChannelOnline:
		return "Online"
	case ChannelPhone:
		return "Telefónico"
	default:
		return "unknown"
	}
}

// RuleKind classifies a price rule. The ordinal doubles as the
// tie-breaker when two rules share a priority.
type RuleKind int

const (
	RuleChannelBased       RuleKind = 1
	RuleUnitScale          RuleKind = 2
	RuleAmountScale        RuleKind = 3
	RuleProductCombination RuleKind = 4
	RuleOrderTotalScale    RuleKind = 5
)

// Valid reports whether k is a known rule kind.
func (k RuleKind) Valid() bool {
	return k >= RuleChannelBased && k <= RuleOrderTotalScale
}

// DisplayName returns the human label used in application logs.
func (k RuleKind) DisplayName() string {
	switch k {
	case RuleChannelBased:
		return "Canal de Venta"
	case RuleUnitScale:
		return "Escala de Unidades"
	case RuleAmountScale:
		return "Escala de Monto"
	case RuleProductCombination:
		return "Combinación de Productos"
	case RuleOrderTotalScale:
		return "Monto Total del Pedido"
	default:
		return "unknown"
	}
}

// DiscountKind specifies how a discount value is interpreted.
type DiscountKind int

const (
	DiscountPercentage  DiscountKind = 1
	DiscountFixedAmount DiscountKind = 2
)

// Valid reports whether k is a known discount kind.
func (k DiscountKind) Valid() bool {
	return k == DiscountPercentage || k == DiscountFixedAmount
}

func (k DiscountKind) String() string {
	switch k {
	case DiscountPercentage:
		return "Porcentaje"
	case DiscountFixedAmount:
		return "Monto Fijo"
	default:
		return "unknown"
	}
}
