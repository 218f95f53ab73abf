// pixgen gera o "copia e cola" PIX e o QR code pela linha de comando.
//
//	pixgen -p criart.yml --amount 150 --description "Pedido 42" --png pedido42.png --copy
//	pixgen --decode "000201..."
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"CRIART_GO/logger"
	"CRIART_GO/pix"

	"github.com/alecthomas/kingpin/v2"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var defaultProfile = []byte(`
recebedor:
  chave: ""
  nome: "Criart"
  cidade: "Sao Paulo"

qrcode:
  tamanho: 200

logger:
  level: "warn"
`)

// Profile são os dados fixos do recebedor, lidos de um YAML
type Profile struct {
	Recebedor struct {
		Chave  string `koanf:"chave"`
		Nome   string `koanf:"nome"`
		Cidade string `koanf:"cidade"`
	} `koanf:"recebedor"`
	QRCode struct {
		Tamanho int `koanf:"tamanho"`
	} `koanf:"qrcode"`
	Logger struct {
		Level string `koanf:"level"`
	} `koanf:"logger"`
}

// loadProfile carrega o perfil padrão e sobrepõe com o arquivo, se houver
func loadProfile(path string) (Profile, error) {
	var p Profile
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(defaultProfile), yaml.Parser()); err != nil {
		return p, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return p, fmt.Errorf("erro ao ler perfil %s: %w", path, err)
		}
	}
	if err := k.Unmarshal("", &p); err != nil {
		return p, err
	}
	return p, nil
}

type options struct {
	profile     string
	key         string
	name        string
	city        string
	amount      string
	description string
	txid        string
	png         string
	copy        bool
	decode      string
}

func parseArgs(args []string) (options, error) {
	var o options
	app := kingpin.New("pixgen", "Gera payloads PIX (copia e cola) e QR codes.")
	app.Flag("profile", "Arquivo YAML com os dados do recebedor").Short('p').StringVar(&o.profile)
	app.Flag("key", "Chave PIX do recebedor").Short('k').StringVar(&o.key)
	app.Flag("name", "Nome do recebedor (até 25 caracteres)").Short('n').StringVar(&o.name)
	app.Flag("city", "Cidade do recebedor (até 15 caracteres)").StringVar(&o.city)
	app.Flag("amount", "Valor em reais, ex. 12.50; vazio para valor em aberto").Short('a').StringVar(&o.amount)
	app.Flag("description", "Descrição do pagamento (até 72 caracteres)").Short('d').StringVar(&o.description)
	app.Flag("txid", "Identificador da transação (até 25 caracteres)").Short('t').StringVar(&o.txid)
	app.Flag("png", "Grava o QR code neste arquivo PNG").StringVar(&o.png)
	app.Flag("copy", "Copia o payload para a área de transferência").BoolVar(&o.copy)
	app.Flag("decode", "Confere e mostra os campos de um payload existente").StringVar(&o.decode)
	_, err := app.Parse(args)
	return o, err
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func run(args []string, stdout io.Writer, stderr string) error {
	o, err := parseArgs(args)
	if err != nil {
		return err
	}
	profile, err := loadProfile(o.profile)
	if err != nil {
		return err
	}

	log, err := logger.New("pixgen", profile.Logger.Level, stderr)
	if err != nil {
		return err
	}
	defer func() {
		_ = log.Sync()
	}()

	if o.decode != "" {
		return printFields(stdout, o.decode)
	}

	req := pix.PaymentRequest{
		PixKey:       first(o.key, profile.Recebedor.Chave),
		MerchantName: first(o.name, profile.Recebedor.Nome),
		MerchantCity: first(o.city, profile.Recebedor.Cidade),
		Description:  o.description,
		TxID:         o.txid,
	}
	if req.PixKey == "" {
		return fmt.Errorf("chave PIX não informada (--key ou recebedor.chave no perfil)")
	}
	if o.amount != "" {
		amount, err := decimal.NewFromString(strings.ReplaceAll(o.amount, ",", "."))
		if err != nil {
			return fmt.Errorf("valor inválido %q: %w", o.amount, err)
		}
		req.Amount = amount
	}

	payload := pix.BuildPayload(req)
	fmt.Fprintln(stdout, payload)
	fmt.Fprintln(stdout, pix.QRImageURL(payload))

	if o.png != "" {
		png, err := pix.RenderPNG(payload, profile.QRCode.Tamanho)
		if err != nil {
			return err
		}
		if err := os.WriteFile(o.png, png, 0o644); err != nil {
			return fmt.Errorf("erro ao gravar %s: %w", o.png, err)
		}
		log.Info("QR code gravado", zap.String("arquivo", o.png))
	}

	if o.copy {
		// A cópia é assíncrona; espera um pouco para o processo não sair antes dela
		select {
		case <-pix.CopyToClipboard(payload, log):
		case <-time.After(2 * time.Second):
			log.Warn("cópia para a área de transferência não terminou a tempo")
		}
	}
	return nil
}

func printFields(w io.Writer, payload string) error {
	fields, err := pix.Parse(payload)
	if err != nil {
		return err
	}
	for _, f := range fields {
		fmt.Fprintf(w, "%s: %s\n", f.Tag, f.Value)
		for _, s := range f.Sub {
			fmt.Fprintf(w, "  %s: %s\n", s.Tag, s.Value)
		}
	}
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout, "stderr"); err != nil {
		fmt.Fprintln(os.Stderr, "pixgen:", err)
		os.Exit(1)
	}
}
