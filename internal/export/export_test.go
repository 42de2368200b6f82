package export

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/poultry-receipt/internal/billing"
	"github.com/Veraticus/poultry-receipt/internal/receipt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInput() billing.ReceiptInput {
	return billing.ReceiptInput{
		Date:   "2024-05-02",
		Weight: billing.Of(2.5),
		Rate:   billing.Of(300),
		PreviousBills: []billing.PreviousBill{
			{ID: 1, Date: "2024-04-28", Amount: billing.Of(500)},
			{ID: 2, Date: "2024-04-30", Amount: billing.Of(300)},
		},
	}
}

func sampleArtifact(t *testing.T, format string) Artifact {
	t.Helper()
	v := receipt.NewView(sampleInput(), receipt.Header{ShopName: "Afzal Poultry Shop"}, receipt.NewFormatter("en", ""))
	return NewArtifact(v, "RECEIPT BODY", format, receipt.SlipWidth58mm)
}

func TestNewArtifact(t *testing.T) {
	a := sampleArtifact(t, "")

	assert.Equal(t, FormatText, a.Format)
	assert.Equal(t, "Receipt for 02/05/2024", a.Caption)
	assert.True(t, strings.HasPrefix(a.FileName, "receipt-"))
	assert.True(t, strings.HasSuffix(a.FileName, ".txt"))
	assert.Equal(t, "RECEIPT BODY\n", string(a.Content()))
	assert.NotEmpty(t, a.Slip)

	other := sampleArtifact(t, FormatText)
	assert.NotEqual(t, a.FileName, other.FileName)

	slip := sampleArtifact(t, FormatESCPOS)
	assert.True(t, strings.HasSuffix(slip.FileName, ".bin"))
	assert.Equal(t, slip.Slip, slip.Content())
}

func TestShareError(t *testing.T) {
	err := shareError("printer", io.ErrClosedPipe, true)

	var se *ShareError
	require.ErrorAs(t, err, &se)
	assert.True(t, se.Retryable)
	assert.Equal(t, "printer", se.Target)
	assert.ErrorIs(t, err, io.ErrClosedPipe)
	assert.Contains(t, err.Error(), "share to printer failed")
}

func TestFileSharer(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	f := NewFileSharer(dir)
	a := sampleArtifact(t, FormatText)

	require.NoError(t, f.Share(context.Background(), a))

	data, err := os.ReadFile(f.Path(a))
	require.NoError(t, err)
	assert.Equal(t, "RECEIPT BODY\n", string(data))
	assert.Equal(t, "file", f.Name())
}

func TestFileSharer_Errors(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	err := NewFileSharer(filepath.Join(blocker, "sub")).Share(context.Background(), sampleArtifact(t, FormatText))
	var se *ShareError
	require.ErrorAs(t, err, &se)
	assert.False(t, se.Retryable)

	err = NewFileSharer(t.TempDir()).Share(context.Background(), Artifact{})
	require.ErrorAs(t, err, &se)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, NewFileSharer(t.TempDir()).Share(ctx, sampleArtifact(t, FormatText)), context.Canceled)
}

func TestClipboardSharer(t *testing.T) {
	var copied string
	c := &ClipboardSharer{write: func(s string) error { copied = s; return nil }}

	require.NoError(t, c.Share(context.Background(), sampleArtifact(t, FormatText)))
	assert.Equal(t, "Receipt for 02/05/2024\n\nRECEIPT BODY", copied)

	c = &ClipboardSharer{unsupported: true}
	err := c.Share(context.Background(), sampleArtifact(t, FormatText))
	assert.ErrorIs(t, err, ErrUnsupported)

	c = &ClipboardSharer{write: func(string) error { return errors.New("xclip: cannot open display") }}
	err = c.Share(context.Background(), sampleArtifact(t, FormatText))
	var se *ShareError
	require.ErrorAs(t, err, &se)
	assert.True(t, se.Retryable)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, io.ErrShortWrite }

func TestWriterSharer(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterSharer(&buf)

	require.NoError(t, w.Share(context.Background(), sampleArtifact(t, FormatText)))
	assert.Equal(t, "RECEIPT BODY\n", buf.String())
	assert.Equal(t, "stdout", w.Name())

	err := NewWriterSharer(failingWriter{}).Share(context.Background(), sampleArtifact(t, FormatText))
	assert.ErrorIs(t, err, io.ErrShortWrite)
}

type fakePrinter struct {
	err     error
	printed [][]byte
}

func (p *fakePrinter) Print(_ context.Context, data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.printed = append(p.printed, data)
	return nil
}

func (p *fakePrinter) IsConnected() bool { return p.err == nil }

func TestPrinterSharer(t *testing.T) {
	p := &fakePrinter{}
	s := NewPrinterSharer(p)
	a := sampleArtifact(t, FormatText)

	require.NoError(t, s.Share(context.Background(), a))
	require.Len(t, p.printed, 1)
	assert.Equal(t, a.Slip, p.printed[0])

	p.err = errors.New("paper out")
	var se *ShareError
	require.ErrorAs(t, s.Share(context.Background(), a), &se)
	assert.True(t, se.Retryable)

	assert.ErrorIs(t, NewPrinterSharer(nil).Share(context.Background(), a), ErrUnsupported)
	assert.Error(t, NewPrinterSharer(&fakePrinter{}).Share(context.Background(), Artifact{}))
}

func TestNetworkPrinter(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = ln.Close() }()

	received := make(chan []byte, 1)
	go func() {
		conn, acceptErr := ln.Accept()
		if acceptErr != nil {
			return
		}
		defer func() { _ = conn.Close() }()
		data, _ := io.ReadAll(conn)
		received <- data
	}()

	p := NewNetworkPrinter(ln.Addr().String())
	require.NoError(t, p.Print(context.Background(), []byte("slip")))
	assert.Equal(t, []byte("slip"), <-received)
}

func TestUSBPrinter(t *testing.T) {
	dev := filepath.Join(t.TempDir(), "lp0")
	p := NewUSBPrinter(dev)

	assert.False(t, p.IsConnected())
	assert.Error(t, p.Print(context.Background(), []byte("slip")))

	require.NoError(t, os.WriteFile(dev, nil, 0o600))
	assert.True(t, p.IsConnected())
	require.NoError(t, p.Print(context.Background(), []byte("slip")))

	data, err := os.ReadFile(dev)
	require.NoError(t, err)
	assert.Equal(t, "slip", string(data))
}

func TestNewPrinter(t *testing.T) {
	tests := []struct {
		name        string
		printerType string
		usbPath     string
		address     string
		wantErr     error
		wantAnyErr  bool
	}{
		{name: "usb", printerType: "usb", usbPath: "/dev/usb/lp0"},
		{name: "usb without path", printerType: "usb", wantAnyErr: true},
		{name: "network", printerType: "network", address: "10.0.0.5:9100"},
		{name: "network without address", printerType: "network", wantAnyErr: true},
		{name: "none", printerType: "none", wantErr: ErrUnsupported},
		{name: "unknown", printerType: "bluetooth", wantAnyErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPrinter(tt.printerType, tt.usbPath, tt.address)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantAnyErr:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.NotNil(t, p)
			}
		})
	}
}
