package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/blocto/solana-go-sdk/client"

	usecase "videotoken/internal/application/usecase"
	assetdom "videotoken/internal/domain/asset"
	tokendom "videotoken/internal/domain/token"
	"videotoken/internal/infra/arweave"
	solanainfra "videotoken/internal/infra/solana"
)

// Devnet issuance runner. Exercises the wallet-mode pipeline end to end with
// a local keypair standing in for the connected wallet, then persists the
// record through a running API's /save-token endpoint — the same call the
// browser flow makes.
func main() {
	var (
		keypairPath = flag.String("keypair", "", "path to keypair file (solana-keygen JSON or base58)")
		imagePath   = flag.String("image", "", "path to token image (png/jpeg)")
		videoPath   = flag.String("video", "", "path to token video (mp4/webm/ogg)")
		name        = flag.String("name", "Demo", "token name")
		symbol      = flag.String("symbol", "DMO", "token symbol")
		description = flag.String("description", "devnet issuance test", "token description")
		decimals    = flag.Int("decimals", 2, "token decimals")
		supply      = flag.String("supply", "50", "token supply (human units)")
		rpcEndpoint = flag.String("rpc", "https://api.devnet.solana.com", "solana rpc endpoint")
		recordAPI   = flag.String("record-endpoint", "http://localhost:8080/save-token", "issuance record endpoint")
	)
	flag.Parse()

	if *keypairPath == "" || *imagePath == "" || *videoPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	baseURL := os.Getenv("ARWEAVE_BASE_URL")
	if baseURL == "" {
		log.Fatal("ARWEAVE_BASE_URL is empty")
	}

	raw, err := os.ReadFile(*keypairPath)
	if err != nil {
		log.Fatalf("read keypair: %v", err)
	}
	account, err := solanainfra.ParseKeypair(raw)
	if err != nil {
		log.Fatalf("parse keypair: %v", err)
	}
	log.Printf("[devnet-mint] wallet=%s", account.PublicKey.ToBase58())

	wallet := solanainfra.NewWalletSession()
	wallet.Connect(account)

	uploader := arweave.NewHTTPUploader(baseURL, os.Getenv("ARWEAVE_API_KEY"))

	uc := usecase.NewIssuanceUsecase(
		uploader,
		usecase.NewMetadataBuilder(uploader),
		solanainfra.NewResolver(nil, wallet),
		solanainfra.NewBuilder(),
		solanainfra.NewSubmitter(client.NewClient(*rpcEndpoint)),
		&httpRecordStore{endpoint: *recordAPI},
		nil,
	)

	image, err := readBlob(*imagePath)
	if err != nil {
		log.Fatalf("read image: %v", err)
	}
	video, err := readBlob(*videoPath)
	if err != nil {
		log.Fatalf("read video: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	res, err := uc.Issue(ctx, usecase.IssuanceInput{
		Spec: tokendom.Spec{
			Name:        *name,
			Symbol:      *symbol,
			Description: *description,
			Decimals:    *decimals,
			Supply:      *supply,
		},
		Image: image,
		Video: video,
		Mode:  usecase.SignerModeWallet,
	})
	if err != nil {
		log.Fatalf("issuance failed: %v", err)
	}

	log.Printf("[devnet-mint] OK mint=%s signature=%s record=%s", res.MintAddress, res.Signature, res.Record)
	log.Printf("[devnet-mint] tx:   https://explorer.solana.com/tx/%s?cluster=devnet", res.Signature)
	log.Printf("[devnet-mint] mint: https://explorer.solana.com/address/%s?cluster=devnet", res.MintAddress)
}

func readBlob(path string) (assetdom.Blob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return assetdom.Blob{}, err
	}
	return assetdom.Blob{
		Bytes:        data,
		MediaType:    mediaTypeForExt(filepath.Ext(path)),
		OriginalName: filepath.Base(path),
	}, nil
}

func mediaTypeForExt(ext string) string {
	switch ext {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	case ".ogv", ".ogg":
		return "video/ogg"
	default:
		return "application/octet-stream"
	}
}

// httpRecordStore persists the issuance record through the API's
// /save-token endpoint.
type httpRecordStore struct {
	endpoint string
}

func (s *httpRecordStore) Create(ctx context.Context, rec tokendom.IssuanceRecord) error {
	body, err := json.Marshal(map[string]string{
		"mint":     rec.Mint,
		"amount":   rec.Amount,
		"videoUri": rec.VideoURI,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("save-token returned status=%d", resp.StatusCode)
	}
	return nil
}
