// Command sealbox is the operator CLI: generate keys, and encrypt or decrypt
// single values against the same envelope format the API uses.
//
//	sealbox keygen
//	sealbox encrypt -context app-42 "some secret"
//	sealbox decrypt -context app-42 "ivB64.tagB64.ctB64"
//
// The key comes from -key, or from SEALBOX_MASTER_KEY (a .env file in the
// working directory is honored).
package main

import (
	"encoding/base64"
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/sealboxhq/sealbox/internal/infrastructure/crypto"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	// A .env file is a convenience for local use, never required.
	_ = godotenv.Load()

	var err error
	switch os.Args[1] {
	case "keygen":
		err = runKeygen()
	case "encrypt":
		err = runEncrypt(os.Args[2:])
	case "decrypt":
		err = runDecrypt(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: sealbox <keygen|encrypt|decrypt> [flags] [value]")
}

func runKeygen() error {
	key, err := crypto.GenerateKey()
	if err != nil {
		return err
	}
	fmt.Println(base64.StdEncoding.EncodeToString(key))
	return nil
}

type cipherFlags struct {
	key      string
	context  string
	iv       string
	binary   bool
	encoding string
}

func parseCipherFlags(name string, args []string) (*cipherFlags, string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	cf := &cipherFlags{}
	fs.StringVar(&cf.key, "key", "", "Base64 256-bit key (default: SEALBOX_MASTER_KEY)")
	fs.StringVar(&cf.context, "context", "", "associated data bound into the tag")
	fs.StringVar(&cf.iv, "iv", "", "pin an explicit Base64 IV (encrypt only)")
	fs.BoolVar(&cf.binary, "binary", false, "use the concatenated binary wire form (hex in/out)")
	fs.StringVar(&cf.encoding, "encoding", "utf8", "plaintext encoding: utf8, hex, base64, latin1")
	if err := fs.Parse(args); err != nil {
		return nil, "", err
	}
	if fs.NArg() != 1 {
		return nil, "", fmt.Errorf("%s expects exactly one value argument", name)
	}
	return cf, fs.Arg(0), nil
}

func (cf *cipherFlags) newCipher() (*crypto.Cipher, error) {
	opts := crypto.Options{
		KeyBase64:   cf.key,
		KeyProvider: crypto.EnvKeyProvider(crypto.DefaultKeyEnv),
		Binary:      cf.binary,
		Encoding:    crypto.Encoding(cf.encoding),
	}
	return crypto.New(opts)
}

func (cf *cipherFlags) aad() []byte {
	if cf.context == "" {
		return nil
	}
	return []byte(cf.context)
}

func runEncrypt(args []string) error {
	cf, plaintext, err := parseCipherFlags("encrypt", args)
	if err != nil {
		return err
	}
	c, err := cf.newCipher()
	if err != nil {
		return err
	}

	var envelope []byte
	if cf.iv != "" {
		iv, err := crypto.ParseIV(cf.iv)
		if err != nil {
			return err
		}
		envelope, err = c.EncryptWithIV(plaintext, cf.aad(), iv)
		if err != nil {
			return err
		}
	} else {
		envelope, err = c.Encrypt(plaintext, cf.aad())
		if err != nil {
			return err
		}
	}

	if cf.binary {
		// The raw form is unprintable; hand it over as hex.
		fmt.Printf("%x\n", envelope)
		return nil
	}
	fmt.Println(string(envelope))
	return nil
}

func runDecrypt(args []string) error {
	cf, input, err := parseCipherFlags("decrypt", args)
	if err != nil {
		return err
	}
	c, err := cf.newCipher()
	if err != nil {
		return err
	}

	envelope := []byte(input)
	if cf.binary {
		decoded, err := hex.DecodeString(input)
		if err != nil {
			return fmt.Errorf("binary envelopes must be passed as hex: %w", err)
		}
		envelope = decoded
	}

	plaintext, err := c.Decrypt(envelope, cf.aad())
	if err != nil {
		return err
	}
	fmt.Println(plaintext)
	return nil
}
