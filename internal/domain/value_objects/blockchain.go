package valueobjects

import apperrors "payoutd/internal/shared_kernel/errors"

type Blockchain string

const (
	BlockchainBitcoin    Blockchain = "bitcoin"
	BlockchainEthereum   Blockchain = "ethereum"
	BlockchainBsc        Blockchain = "bsc"
	BlockchainTokenchain Blockchain = "tokenchain"
)

func AllBlockchains() []Blockchain {
	return []Blockchain{
		BlockchainBitcoin,
		BlockchainEthereum,
		BlockchainBsc,
		BlockchainTokenchain,
	}
}

func ParseBlockchain(raw string) (Blockchain, *apperrors.AppError) {
	switch raw {
	case string(BlockchainBitcoin):
		return BlockchainBitcoin, nil
	case string(BlockchainEthereum):
		return BlockchainEthereum, nil
	case string(BlockchainBsc):
		return BlockchainBsc, nil
	case string(BlockchainTokenchain):
		return BlockchainTokenchain, nil
	default:
		return "", apperrors.NewValidation(
			"blockchain_invalid",
			"blockchain is not supported",
			map[string]any{"blockchain": raw},
		)
	}
}

func (b Blockchain) String() string {
	return string(b)
}
