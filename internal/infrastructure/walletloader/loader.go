package walletloader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"

	"wallet_tracker/internal/domain/entity"
)

// DefaultWalletFilePath is used when the config does not name an import file.
const DefaultWalletFilePath = "data/wallets.txt"

// ErrInvalidAddress is returned by ValidateAddress.
var ErrInvalidAddress = errors.New("invalid wallet address")

var suiPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

// SkippedLine describes a line of the wallet file that was not imported.
type SkippedLine struct {
	Line   int
	Text   string
	Reason string
}

// ValidateAddress checks address against the formats the backend tracks and
// returns it in canonical form. EVM addresses come back checksummed.
func ValidateAddress(address string) (string, error) {
	address = strings.TrimSpace(address)
	switch {
	case address == "":
		return "", fmt.Errorf("%w: empty", ErrInvalidAddress)
	case common.IsHexAddress(address) && strings.HasPrefix(strings.ToLower(address), "0x"):
		return common.HexToAddress(address).Hex(), nil
	case suiPattern.MatchString(address):
		return strings.ToLower(address), nil
	}

	if pubKey, err := solana.PublicKeyFromBase58(address); err == nil {
		return pubKey.String(), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAddress, address)
}

// LoadWallets reads wallets from filePath. See Parse for the format.
func LoadWallets(filePath string) ([]entity.Wallet, []SkippedLine, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open wallet file %s: %w", filePath, err)
	}
	defer file.Close()

	wallets, skipped, err := Parse(file)
	if err != nil {
		return nil, nil, fmt.Errorf("error scanning wallet file %s: %w", filePath, err)
	}
	return wallets, skipped, nil
}

// Parse reads one wallet per line as "address[,chain[,label]]". Blank lines and
// lines starting with # are ignored. Lines with an invalid address or a
// repeated address are skipped and reported.
func Parse(r io.Reader) ([]entity.Wallet, []SkippedLine, error) {
	var (
		wallets []entity.Wallet
		skipped []SkippedLine
		seen    = make(map[string]struct{})
	)

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.SplitN(line, ",", 3)
		address, err := ValidateAddress(fields[0])
		if err != nil {
			skipped = append(skipped, SkippedLine{Line: lineNum, Text: line, Reason: err.Error()})
			continue
		}
		key := strings.ToLower(address)
		if _, dup := seen[key]; dup {
			skipped = append(skipped, SkippedLine{Line: lineNum, Text: line, Reason: "duplicate address"})
			continue
		}
		seen[key] = struct{}{}

		wallet := entity.Wallet{Address: address}
		if len(fields) > 1 {
			wallet.Chain = strings.TrimSpace(fields[1])
		}
		if len(fields) > 2 {
			wallet.Label = strings.TrimSpace(fields[2])
		}
		wallets = append(wallets, wallet)
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return wallets, skipped, nil
}
