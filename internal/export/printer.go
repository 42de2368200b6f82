package export

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"
)

// Printer sends raw ESC/POS bytes to a thermal printer.
type Printer interface {
	Print(ctx context.Context, data []byte) error
	IsConnected() bool
}

// usbPrinter writes to a device file such as /dev/usb/lp0.
type usbPrinter struct {
	path string
}

// NewUSBPrinter creates a printer that writes to a USB device file.
func NewUSBPrinter(devicePath string) Printer {
	return &usbPrinter{path: devicePath}
}

func (p *usbPrinter) Print(_ context.Context, data []byte) error {
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("failed to open USB device %s: %w", p.path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write to USB device %s: %w", p.path, err)
	}
	return nil
}

func (p *usbPrinter) IsConnected() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

// networkPrinter dials a raw TCP port, usually 9100.
type networkPrinter struct {
	address string
	timeout time.Duration
}

// NewNetworkPrinter creates a printer reached over TCP. The address
// includes the port, e.g. "192.168.1.100:9100".
func NewNetworkPrinter(address string) Printer {
	return &networkPrinter{
		address: address,
		timeout: 5 * time.Second,
	}
}

func (p *networkPrinter) Print(ctx context.Context, data []byte) error {
	dialer := net.Dialer{Timeout: p.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", p.address)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", p.address, err)
	}
	defer func() { _ = conn.Close() }()

	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))

	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("failed to write to %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.address, 2*time.Second)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// NewPrinter creates the printer for a configured connection type: "usb",
// "network" or "none". None has no printer and reports ErrUnsupported.
func NewPrinter(printerType, usbPath, address string) (Printer, error) {
	switch printerType {
	case "usb":
		if usbPath == "" {
			return nil, errors.New("USB path is required for USB printer type")
		}
		return NewUSBPrinter(usbPath), nil
	case "network":
		if address == "" {
			return nil, errors.New("address is required for network printer type")
		}
		return NewNetworkPrinter(address), nil
	case "none", "":
		return nil, ErrUnsupported
	default:
		return nil, fmt.Errorf("unknown printer type %q (use usb, network, or none)", printerType)
	}
}

// PrinterSharer prints the ESC/POS slip of a receipt.
type PrinterSharer struct {
	printer Printer
}

// NewPrinterSharer prints on p. A nil printer makes every share fail with
// ErrUnsupported.
func NewPrinterSharer(p Printer) *PrinterSharer {
	return &PrinterSharer{printer: p}
}

// Name implements Sharer.
func (s *PrinterSharer) Name() string { return "printer" }

// Share implements Sharer. Printers drop off the network or run out of
// paper, so failures are retryable.
func (s *PrinterSharer) Share(ctx context.Context, a Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.printer == nil {
		return shareError(s.Name(), ErrUnsupported, false)
	}
	if len(a.Slip) == 0 {
		return shareError(s.Name(), errors.New("artifact has no printable slip"), false)
	}
	if err := s.printer.Print(ctx, a.Slip); err != nil {
		return shareError(s.Name(), err, true)
	}
	return nil
}
