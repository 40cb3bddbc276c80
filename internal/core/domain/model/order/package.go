package order

import (
	"errors"
	"fmt"

	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/pkg/errs"
	"github.com/p-thanks/RouteX/internal/pkg/guard"
)

// MaxPackageWeightKg is the heaviest package a single driver carries.
const MaxPackageWeightKg = 50.0

// PackageType classifies the contents of a package for handling purposes.
type PackageType int

const (
	// PackageTypeUnknown represents an invalid or undefined package type.
	PackageTypeUnknown PackageType = iota

	// PackageTypeDocument is a flat envelope.
	PackageTypeDocument

	// PackageTypeParcel is an ordinary boxed parcel.
	PackageTypeParcel

	// PackageTypeFood is time-sensitive prepared food.
	PackageTypeFood

	// PackageTypeFragile requires careful handling.
	PackageTypeFragile

	// PackageTypeElectronics is sensitive to shock and moisture.
	PackageTypeElectronics

	// PackageTypeClothing is soft goods.
	PackageTypeClothing

	// PackageTypeOther is anything not covered above.
	PackageTypeOther
)

func getPackageTypeStrings() map[PackageType]string {
	return map[PackageType]string{
		PackageTypeDocument:    "DOCUMENT",
		PackageTypeParcel:      "PARCEL",
		PackageTypeFood:        "FOOD",
		PackageTypeFragile:     "FRAGILE",
		PackageTypeElectronics: "ELECTRONICS",
		PackageTypeClothing:    "CLOTHING",
		PackageTypeOther:       "OTHER",
	}
}

// PackageTypeFromString parses a wire name into a PackageType.
func PackageTypeFromString(s string) (PackageType, error) {
	for t, str := range getPackageTypeStrings() {
		if str == s {
			return t, nil
		}
	}
	return PackageTypeUnknown, errs.NewValueIsInvalidErrorWithCause("packageType",
		fmt.Errorf("unknown package type %q", s))
}

// Validate checks if the PackageType is one of the defined classifications.
func (t PackageType) Validate() error {
	if _, ok := getPackageTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidError("packageType")
	}
	return nil
}

// String returns the wire name of the package type.
func (t PackageType) String() string {
	if s, ok := getPackageTypeStrings()[t]; ok {
		return s
	}
	return "UNKNOWN"
}

// PackageInfo is a value object describing what is being shipped.
type PackageInfo struct {
	packageType         PackageType
	weightKg            float64
	description         string
	dimensions          string
	specialInstructions string
	constructorGuard    guard.ConstructorGuard
}

// NewPackageInfo creates a validated PackageInfo.
// Weight must be positive and at most MaxPackageWeightKg. Dimensions and
// special instructions are free-form and optional.
func NewPackageInfo(packageType PackageType, weightKg float64,
	description, dimensions, specialInstructions string) (PackageInfo, error) {
	if err := packageType.Validate(); err != nil {
		return PackageInfo{}, err
	}
	if weightKg <= 0 || weightKg > MaxPackageWeightKg {
		return PackageInfo{}, errs.NewValueIsOutOfRangeError("weightKg", weightKg, 0, MaxPackageWeightKg)
	}

	return PackageInfo{
		packageType:         packageType,
		weightKg:            weightKg,
		description:         description,
		dimensions:          dimensions,
		specialInstructions: specialInstructions,
		constructorGuard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the PackageInfo was created through its constructor.
func (p PackageInfo) Validate() error {
	return p.constructorGuard.Validate(errs.NewValueIsRequiredError("packageInfo"))
}

// Type returns the package classification.
func (p PackageInfo) Type() PackageType { return p.packageType }

// WeightKg returns the package weight in kilograms.
func (p PackageInfo) WeightKg() float64 { return p.weightKg }

// Description returns the free-form contents description.
func (p PackageInfo) Description() string { return p.description }

// Dimensions returns the free-form size description ("30x20x10 cm").
func (p PackageInfo) Dimensions() string { return p.dimensions }

// SpecialInstructions returns handling notes for the driver.
func (p PackageInfo) SpecialInstructions() string { return p.specialInstructions }

// Contact is a value object identifying one end of a delivery:
// a name and a phone number to reach the person at.
type Contact struct {
	name             string
	phone            string
	constructorGuard guard.ConstructorGuard
}

// NewContact creates a validated Contact. Both fields are required.
func NewContact(name, phone string) (Contact, error) {
	err := errors.Join(
		validateRequiredString("name", name),
		validateRequiredString("phone", phone),
	)
	if err != nil {
		return Contact{}, err
	}

	return Contact{name: name, phone: phone, constructorGuard: guard.NewConstructorGuard()}, nil
}

func validateRequiredString(paramName, v string) error {
	if v == "" {
		return errs.NewValueIsRequiredError(paramName)
	}
	return nil
}

// Validate checks that the Contact was created through its constructor.
func (c Contact) Validate() error {
	return c.constructorGuard.Validate(errs.NewValueIsRequiredError("contact"))
}

// Name returns the contact person's name.
func (c Contact) Name() string { return c.name }

// Phone returns the contact phone number.
func (c Contact) Phone() string { return c.phone }

// Waypoint is a value object binding an address line to its geographic
// coordinates and the contact reachable there.
type Waypoint struct {
	address          string
	point            kernel.GeoPoint
	contact          Contact
	constructorGuard guard.ConstructorGuard
}

// NewWaypoint creates a validated Waypoint.
func NewWaypoint(address string, point kernel.GeoPoint, contact Contact) (Waypoint, error) {
	err := errors.Join(
		validateRequiredString("address", address),
		point.Validate(),
		contact.Validate(),
	)
	if err != nil {
		return Waypoint{}, err
	}

	return Waypoint{
		address:          address,
		point:            point,
		contact:          contact,
		constructorGuard: guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the Waypoint was created through its constructor.
func (w Waypoint) Validate() error {
	return w.constructorGuard.Validate(errs.NewValueIsRequiredError("waypoint"))
}

// Address returns the human-readable address line.
func (w Waypoint) Address() string { return w.address }

// Point returns the waypoint's coordinates.
func (w Waypoint) Point() kernel.GeoPoint { return w.point }

// Contact returns the contact reachable at the waypoint.
func (w Waypoint) Contact() Contact { return w.contact }
